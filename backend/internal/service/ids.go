package service

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
)

// IdGenerator issues record ids at creation time.
type IdGenerator interface {
	NewId(now time.Time) string
}

// TimestampIds issues epoch-millisecond ids. Ids from one generator are
// strictly increasing, so a burst within one millisecond still gets distinct
// ids; two processes writing at the same millisecond can still collide.
type TimestampIds struct {
	mu   sync.Mutex
	last int64
}

func (g *TimestampIds) NewId(now time.Time) string {
	ms := now.UnixMilli()

	g.mu.Lock()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms
	g.mu.Unlock()

	return strconv.FormatInt(ms, 10)
}

// UUIDs issues random v4 ids.
type UUIDs struct{}

func (UUIDs) NewId(time.Time) string {
	return uuid.NewString()
}

// NewIdGenerator picks a generator by config name.
func NewIdGenerator(strategy string) (IdGenerator, error) {
	switch strategy {
	case "", "timestamp":
		return &TimestampIds{}, nil
	case "uuid":
		return UUIDs{}, nil
	default:
		return nil, fmt.Errorf("unknown id strategy %q", strategy)
	}
}
