package services

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDGenerator returns a fresh item id on every call.
type IDGenerator func() string

// NewUUID is the default IDGenerator (random v4 UUIDs).
func NewUUID() string {
	return uuid.NewString()
}

// CounterIDs returns a generator yielding prefix+"1", prefix+"2", ...
// Deterministic; used by tests and by seeds that want readable ids.
func CounterIDs(prefix string) IDGenerator {
	var n atomic.Int64
	return func() string {
		return prefix + strconv.FormatInt(n.Add(1), 10)
	}
}
