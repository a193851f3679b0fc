//go:build sqlite

package storage

import "fmt"

// DefaultStoreKind is the store selected when the operator does not choose.
func DefaultStoreKind() string { return "sqlite" }

// NewStore builds a store by kind. path applies to file-backed kinds.
func NewStore(kind, path string) (Store, error) {
	switch kind {
	case "memory":
		return NewMemoryStore(), nil
	case "sqlite":
		return NewSQLiteStore(path)
	default:
		return nil, fmt.Errorf("storage: unknown store kind %q", kind)
	}
}
