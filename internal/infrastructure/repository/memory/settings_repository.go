package memory

import (
	"context"
	"sync"

	"github.com/gridrivals/fantasy-motorsport/internal/domain/settings"
)

type SettingsRepository struct {
	mu   sync.RWMutex
	item settings.LeagueSettings
}

func NewSettingsRepository(seed settings.LeagueSettings) *SettingsRepository {
	return &SettingsRepository{item: seed}
}

func (r *SettingsRepository) Get(_ context.Context) (settings.LeagueSettings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.item, nil
}

func (r *SettingsRepository) Update(_ context.Context, item settings.LeagueSettings) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.item = item
	return nil
}
