package catalog

import (
	"context"
	"errors"
	"strings"
)

var ErrInvalidValue = errors.New("invalid catalog value")

type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

func (s *Service) List(ctx context.Context, kind string) ([]string, error) {
	if s == nil || s.Repo == nil {
		return nil, errors.New("catalog service not configured")
	}
	if !ValidKind(kind) {
		return nil, ErrUnknownKind
	}
	return s.Repo.List(ctx, kind)
}

func (s *Service) Add(ctx context.Context, kind, value string) error {
	if s == nil || s.Repo == nil {
		return errors.New("catalog service not configured")
	}
	if !ValidKind(kind) {
		return ErrUnknownKind
	}
	value = strings.TrimSpace(value)
	if value == "" || len(value) > 64 {
		return ErrInvalidValue
	}
	return s.Repo.Add(ctx, kind, value)
}

func (s *Service) Remove(ctx context.Context, kind, value string) error {
	if s == nil || s.Repo == nil {
		return errors.New("catalog service not configured")
	}
	if !ValidKind(kind) {
		return ErrUnknownKind
	}
	return s.Repo.Remove(ctx, kind, strings.TrimSpace(value))
}
