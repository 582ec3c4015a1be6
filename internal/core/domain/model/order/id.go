package order

import (
	"strconv"
	"sync/atomic"
)

// ID identifies an admitted order. Zero means "not admitted yet".
type ID uint64

func (id ID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// ParseID parses the decimal form produced by String.
func ParseID(s string) (ID, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return ID(v), nil
}

// IDGenerator hands out identifiers on admission. Implementations must be
// safe for concurrent use and never return zero.
type IDGenerator interface {
	Next() ID
}

// Sequence is a monotonic, lock-free IDGenerator.
type Sequence struct {
	last atomic.Uint64
}

// NewSequence starts at 1.
func NewSequence() *Sequence {
	return &Sequence{}
}

// NewSequenceFrom continues after last, so IDs already handed out by an
// earlier run are not reused.
//
// Example:
//
//	last, err := history.LastOrderID(ctx)
//	if err != nil {
//	    return err
//	}
//	queue, err := intake.NewOrderQueue(capacity, order.NewSequenceFrom(last))
func NewSequenceFrom(last ID) *Sequence {
	s := &Sequence{}
	s.last.Store(uint64(last))
	return s
}

func (s *Sequence) Next() ID {
	return ID(s.last.Add(1))
}
