package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/gridrivals/fantasy-motorsport/internal/domain/participant"
	qb "github.com/gridrivals/fantasy-motorsport/internal/platform/querybuilder"
)

type ParticipantRepository struct {
	db *sqlx.DB
}

func NewParticipantRepository(db *sqlx.DB) *ParticipantRepository {
	return &ParticipantRepository{db: db}
}

func (r *ParticipantRepository) List(ctx context.Context) ([]participant.Participant, error) {
	query, args, err := qb.Select("*").From("participants").
		Where(qb.IsNull("deleted_at")).
		OrderBy("joined_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select participants query: %w", err)
	}

	var rows []participantTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select participants: %w", err)
	}

	out := make([]participant.Participant, 0, len(rows))
	for _, row := range rows {
		out = append(out, participantFromRow(row))
	}
	return out, nil
}

func (r *ParticipantRepository) GetByID(ctx context.Context, participantID string) (participant.Participant, bool, error) {
	query, args, err := qb.Select("*").From("participants").
		Where(
			qb.Eq("public_id", participantID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return participant.Participant{}, false, fmt.Errorf("build get participant by id query: %w", err)
	}

	var row participantTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return participant.Participant{}, false, nil
		}
		return participant.Participant{}, false, fmt.Errorf("get participant by id: %w", err)
	}

	return participantFromRow(row), true, nil
}

func participantFromRow(row participantTableModel) participant.Participant {
	return participant.Participant{
		ID:       row.PublicID,
		Name:     row.Name,
		JoinedAt: row.JoinedAt,
	}
}
