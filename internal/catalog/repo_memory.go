package catalog

import (
	"context"
	"sort"
	"strings"
	"sync"
)

type MemoryRepo struct {
	mu      sync.RWMutex
	options map[string][]string
}

// NewMemoryRepo returns a repo pre-seeded with the bundled option lists,
// mirroring the seed rows of the catalog migration.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{options: map[string][]string{
		KindSoilTypes: {"Sandy", "Loamy", "Clayey", "Black", "Red"},
		KindCropTypes: {
			"Maize", "Sugarcane", "Cotton", "Tobacco", "Paddy", "Barley",
			"Wheat", "Millets", "Oil seeds", "Pulses", "Ground Nuts",
		},
		KindFertilizerNames: {
			"Urea", "DAP", "14-35-14", "28-28", "17-17-17", "20-20", "10-26-26",
		},
	}}
}

func (r *MemoryRepo) List(ctx context.Context, kind string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	values, ok := r.options[kind]
	if !ok {
		return nil, ErrUnknownKind
	}
	out := append([]string(nil), values...)
	sort.Strings(out)
	return out, nil
}

func (r *MemoryRepo) Add(ctx context.Context, kind, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	values, ok := r.options[kind]
	if !ok {
		return ErrUnknownKind
	}
	for _, existing := range values {
		if strings.EqualFold(existing, value) {
			return ErrExists
		}
	}
	r.options[kind] = append(values, value)
	return nil
}

func (r *MemoryRepo) Remove(ctx context.Context, kind, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	values, ok := r.options[kind]
	if !ok {
		return ErrUnknownKind
	}
	for i, existing := range values {
		if strings.EqualFold(existing, value) {
			r.options[kind] = append(values[:i], values[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

var _ Repo = (*MemoryRepo)(nil)
