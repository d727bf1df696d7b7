package db

import "errors"

// Sentinel errors for database operations.
var (
	ErrNotFound  = errors.New("db: document not found")
	ErrDuplicate = errors.New("db: duplicate key")
)

// Op constants map to MongoDB command names for error context.
const (
	OpInsert        = "insert"
	OpFind          = "find"
	OpReplace       = "replace"
	OpUpdate        = "update"
	OpDeleteOne     = "deleteOne"
	OpDeleteMany    = "deleteMany"
	OpCount         = "count"
	OpAggregate     = "aggregate"
	OpCreateIndexes = "createIndexes"
	OpPing          = "ping"
	OpDecode        = "decode"
	OpCursor        = "cursor"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }
