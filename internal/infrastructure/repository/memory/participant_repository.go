package memory

import (
	"context"
	"sync"

	"github.com/gridrivals/fantasy-motorsport/internal/domain/participant"
)

type ParticipantRepository struct {
	mu    sync.RWMutex
	items map[string]participant.Participant
	order []string
}

func NewParticipantRepository(seed []participant.Participant) *ParticipantRepository {
	repo := &ParticipantRepository{items: make(map[string]participant.Participant, len(seed))}
	for _, item := range seed {
		repo.items[item.ID] = item
		repo.order = append(repo.order, item.ID)
	}
	return repo
}

func (r *ParticipantRepository) List(_ context.Context) ([]participant.Participant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]participant.Participant, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.items[id])
	}
	return out, nil
}

func (r *ParticipantRepository) GetByID(_ context.Context, participantID string) (participant.Participant, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[participantID]
	return item, ok, nil
}
