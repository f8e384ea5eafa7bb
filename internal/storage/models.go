package storage

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a requested key does not exist.
var ErrNotFound = errors.New("not found")

// Entry is a single key/value record in the durable store.
type Entry struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}
