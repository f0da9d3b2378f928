package advisory

import (
	"context"
	"sort"
	"sync"
	"time"
)

type MemoryRepo struct {
	mu         sync.RWMutex
	advisories map[string]Advisory
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{advisories: make(map[string]Advisory)}
}

func (r *MemoryRepo) Create(ctx context.Context, adv Advisory) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if adv.CreatedAt.IsZero() {
		adv.CreatedAt = time.Now().UTC()
	}
	r.advisories[adv.ID] = adv
	return nil
}

func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Advisory, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Advisory
	for _, adv := range r.advisories {
		if adv.UserID == userID {
			out = append(out, adv)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *MemoryRepo) Delete(ctx context.Context, userID, advisoryID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	adv, ok := r.advisories[advisoryID]
	if !ok || adv.UserID != userID {
		return ErrNotFound
	}
	delete(r.advisories, advisoryID)
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
