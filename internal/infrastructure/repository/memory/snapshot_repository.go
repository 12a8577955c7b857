package memory

import (
	"context"
	"sync"

	"github.com/gridrivals/fantasy-motorsport/internal/domain/snapshot"
)

type SnapshotRepository struct {
	mu    sync.RWMutex
	items []snapshot.TeamSnapshot
}

func NewSnapshotRepository(seed []snapshot.TeamSnapshot) *SnapshotRepository {
	repo := &SnapshotRepository{}
	for _, item := range seed {
		repo.items = append(repo.items, cloneSnapshot(item))
	}
	return repo
}

func (r *SnapshotRepository) List(_ context.Context) ([]snapshot.TeamSnapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]snapshot.TeamSnapshot, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, cloneSnapshot(item))
	}
	return out, nil
}

func (r *SnapshotRepository) ListByParticipant(_ context.Context, participantID string) ([]snapshot.TeamSnapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []snapshot.TeamSnapshot
	for _, item := range r.items {
		if item.ParticipantID == participantID {
			out = append(out, cloneSnapshot(item))
		}
	}
	return out, nil
}

func (r *SnapshotRepository) Append(_ context.Context, item snapshot.TeamSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = append(r.items, cloneSnapshot(item))
	return nil
}

func (r *SnapshotRepository) DeleteByParticipant(_ context.Context, participantID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.items[:0]
	for _, item := range r.items {
		if item.ParticipantID != participantID {
			kept = append(kept, item)
		}
	}
	r.items = kept
	return nil
}

func cloneSnapshot(item snapshot.TeamSnapshot) snapshot.TeamSnapshot {
	out := item
	out.RiderIDs = append([]string(nil), item.RiderIDs...)
	return out
}
