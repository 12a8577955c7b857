package participant

import "context"

type Repository interface {
	List(ctx context.Context) ([]Participant, error)
	GetByID(ctx context.Context, participantID string) (Participant, bool, error)
}
