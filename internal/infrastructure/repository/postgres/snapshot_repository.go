package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/gridrivals/fantasy-motorsport/internal/domain/snapshot"
	qb "github.com/gridrivals/fantasy-motorsport/internal/platform/querybuilder"
)

// SnapshotRepository persists team snapshots as append-only rows. There is no
// update path: the table only grows, except for the participant cascade.
type SnapshotRepository struct {
	db *sqlx.DB
}

func NewSnapshotRepository(db *sqlx.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

func (r *SnapshotRepository) List(ctx context.Context) ([]snapshot.TeamSnapshot, error) {
	query, args, err := snapshotBaseSelectBuilder().
		OrderBy("created_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select snapshots query: %w", err)
	}

	var rows []snapshotTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select snapshots: %w", err)
	}

	out := make([]snapshot.TeamSnapshot, 0, len(rows))
	for _, row := range rows {
		out = append(out, snapshotFromRow(row))
	}
	return out, nil
}

func (r *SnapshotRepository) ListByParticipant(ctx context.Context, participantID string) ([]snapshot.TeamSnapshot, error) {
	query, args, err := snapshotBaseSelectBuilder().
		Where(qb.Eq("participant_public_id", participantID)).
		OrderBy("created_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select snapshots by participant query: %w", err)
	}

	var rows []snapshotTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select snapshots by participant: %w", err)
	}

	out := make([]snapshot.TeamSnapshot, 0, len(rows))
	for _, row := range rows {
		out = append(out, snapshotFromRow(row))
	}
	return out, nil
}

func (r *SnapshotRepository) Append(ctx context.Context, item snapshot.TeamSnapshot) error {
	insertModel := snapshotInsertModel{
		PublicID:      item.ID,
		ParticipantID: item.ParticipantID,
		RiderIDs:      item.RiderIDs,
		ConstructorID: item.ConstructorID,
		RaceID:        item.RaceID,
		CreatedAt:     item.CreatedAt,
	}

	query, args, err := qb.InsertModel("team_snapshots", insertModel, "")
	if err != nil {
		return fmt.Errorf("build snapshot insert query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}
	return nil
}

func (r *SnapshotRepository) DeleteByParticipant(ctx context.Context, participantID string) error {
	query := `DELETE FROM team_snapshots WHERE participant_public_id = $1`
	if _, err := r.db.ExecContext(ctx, query, participantID); err != nil {
		return fmt.Errorf("delete snapshots by participant: %w", err)
	}
	return nil
}

func snapshotFromRow(row snapshotTableModel) snapshot.TeamSnapshot {
	return snapshot.TeamSnapshot{
		ID:            row.PublicID,
		ParticipantID: row.ParticipantID,
		RiderIDs:      append([]string(nil), row.RiderIDs...),
		ConstructorID: row.ConstructorID,
		RaceID:        row.RaceID,
		CreatedAt:     row.CreatedAt,
	}
}

func snapshotBaseSelectBuilder() *qb.SelectBuilder {
	return qb.Select("*").From("team_snapshots")
}
