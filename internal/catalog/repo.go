// Package catalog manages the dropdown option lists (soil types, crop
// types, fertilizer names) shown by clients and curated by admins.
package catalog

import (
	"context"
	"errors"
)

const (
	KindSoilTypes       = "soil_types"
	KindCropTypes       = "crop_types"
	KindFertilizerNames = "fertilizer_names"
)

var (
	ErrUnknownKind = errors.New("unknown catalog kind")
	ErrNotFound    = errors.New("catalog option not found")
	ErrExists      = errors.New("catalog option already exists")
)

// ValidKind reports whether kind names one of the managed catalogs.
func ValidKind(kind string) bool {
	switch kind {
	case KindSoilTypes, KindCropTypes, KindFertilizerNames:
		return true
	}
	return false
}

type Repo interface {
	List(ctx context.Context, kind string) ([]string, error)
	Add(ctx context.Context, kind, value string) error
	Remove(ctx context.Context, kind, value string) error
}
