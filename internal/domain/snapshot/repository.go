package snapshot

import "context"

// Repository is append-only: snapshots are created, listed, and cascade-removed
// with their participant, never updated.
type Repository interface {
	List(ctx context.Context) ([]TeamSnapshot, error)
	ListByParticipant(ctx context.Context, participantID string) ([]TeamSnapshot, error)
	Append(ctx context.Context, item TeamSnapshot) error
	DeleteByParticipant(ctx context.Context, participantID string) error
}
