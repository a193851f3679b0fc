//go:build !sqlite

package storage

import "fmt"

// DefaultStoreKind is the store selected when the operator does not choose.
func DefaultStoreKind() string { return "memory" }

// NewStore builds a store by kind. The sqlite kind needs the sqlite build
// tag; without it the request fails with a hint instead of a silent
// downgrade.
func NewStore(kind, path string) (Store, error) {
	switch kind {
	case "memory":
		return NewMemoryStore(), nil
	case "sqlite":
		return nil, fmt.Errorf("storage: sqlite store requested but binary was built without the sqlite tag")
	default:
		return nil, fmt.Errorf("storage: unknown store kind %q", kind)
	}
}
