package advisory

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("advisory not found")

type Repo interface {
	Create(ctx context.Context, adv Advisory) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Advisory, error)
	Delete(ctx context.Context, userID, advisoryID string) error
}
