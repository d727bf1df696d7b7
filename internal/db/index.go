package db

import (
	"errors"
	"strconv"
)

// IndexKind enumerates supported index key types.
type IndexKind int

const (
	// IndexAscending is a regular ascending key.
	IndexAscending IndexKind = iota
	// IndexDescending is a regular descending key.
	IndexDescending
	// IndexText is a full-text key.
	IndexText
)

// IndexKey is a single field of an index.
type IndexKey struct {
	Field string
	Kind  IndexKind
}

// IndexSpec is a complete index definition used by createIndexes.
type IndexSpec struct {
	Name string
	Keys []IndexKey
}

// Validate checks that the index definition is well-formed.
func (idx *IndexSpec) Validate() error {
	if idx.Name == "" {
		return errors.New("index name is required")
	}
	if len(idx.Keys) == 0 {
		return errors.New("at least one key is required")
	}

	seen := make(map[string]bool)
	for i, k := range idx.Keys {
		if k.Field == "" {
			return errors.New("field name is required at key " + strconv.Itoa(i))
		}
		if seen[k.Field] {
			return errors.New("duplicate field name: " + k.Field)
		}
		seen[k.Field] = true
	}
	return nil
}
