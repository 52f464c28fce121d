package catalog

import "context"

// Source is the read side of the catalog consumed by the scoring
// pipeline. List returns entries in the order they were first stored;
// scoring tie-breaks depend on that order staying stable between runs.
type Source interface {
	List(ctx context.Context) ([]Manager, error)
}

// Store persists the manager catalog.
type Store interface {
	Source
	Close() error

	Upsert(ctx context.Context, m Manager) error
	Get(ctx context.Context, id string) (Manager, bool, error)
	Delete(ctx context.Context, id string) error

	// ReplaceAll swaps the whole catalog for the given entries, used by
	// bulk import.
	ReplaceAll(ctx context.Context, managers []Manager) error
}
