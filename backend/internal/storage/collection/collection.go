// Package collection keeps a set of records as one ordered list value
// ("list-as-table"). New records go to the head, so the stored order is
// newest first and listings return it unchanged.
//
// Deletes read the whole list, filter it in memory and rewrite it. Without
// a Locker the read and the rewrite are separate commands: a record appended
// in between is lost, and two concurrent deletes may bring back a removed
// record.
package collection

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/itchan-dev/kvboard/shared/domain"
	"github.com/itchan-dev/kvboard/shared/errors"
	"github.com/itchan-dev/kvboard/shared/logger"
)

var recordsDroppedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kvboard_records_dropped_total",
		Help: "Stored list elements skipped because they could not be decoded",
	},
	[]string{"list"},
)

// ListStore is the ordered-list service the collection lives in.
type ListStore interface {
	PushHead(ctx context.Context, key string, values ...string) error
	Range(ctx context.Context, key string, start, stop int64) ([]string, error)
	Len(ctx context.Context, key string) (int64, error)
	Delete(ctx context.Context, key string) error
	Replace(ctx context.Context, key string, values []string) error
}

// Locker serializes writers of one key, possibly across processes.
type Locker interface {
	WithLock(ctx context.Context, key string, fn func() error) error
}

type Option func(*settings)

type settings struct {
	locker Locker
}

// WithLocker makes every write (append, remove, clear) run under locker.
func WithLocker(locker Locker) Option {
	return func(s *settings) { s.locker = locker }
}

type List[T domain.Record] struct {
	store  ListStore
	key    string
	locker Locker
}

func New[T domain.Record](store ListStore, key string, opts ...Option) *List[T] {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}
	return &List[T]{store: store, key: key, locker: s.locker}
}

func (l *List[T]) Key() string {
	return l.key
}

// All returns every decodable record, newest first. Elements that fail to
// decode are logged, counted and skipped.
func (l *List[T]) All(ctx context.Context) ([]T, error) {
	raw, err := l.store.Range(ctx, l.key, 0, -1)
	if err != nil {
		return nil, err
	}

	records := make([]T, 0, len(raw))
	for i, elem := range raw {
		rec, err := decode[T](elem)
		if err != nil {
			l.drop(&errors.DecodeError{Index: i, Err: err})
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// Append stores rec at the head of the list.
func (l *List[T]) Append(ctx context.Context, rec T) error {
	data, err := encode(rec)
	if err != nil {
		return err
	}
	return l.write(ctx, func() error {
		return l.store.PushHead(ctx, l.key, data)
	})
}

// RemoveWhere deletes every record for which match is true and returns how
// many were removed. Survivors keep their relative order and their stored
// text, including fields T does not know about; only a double-encoded
// element loses its outer string layer. Elements that cannot be decoded
// are kept as they are. Nothing is written when no record matches.
func (l *List[T]) RemoveWhere(ctx context.Context, match func(T) bool) (int, error) {
	var removed int
	err := l.write(ctx, func() error {
		raw, err := l.store.Range(ctx, l.key, 0, -1)
		if err != nil {
			return err
		}

		removed = 0
		survivors := make([]string, 0, len(raw))
		for _, elem := range raw {
			obj, err := unwrap(elem)
			if err != nil {
				survivors = append(survivors, elem)
				continue
			}
			rec, err := decodeObject[T](obj)
			if err != nil {
				survivors = append(survivors, elem)
				continue
			}
			if match(rec) {
				removed++
				continue
			}
			survivors = append(survivors, obj)
		}

		if removed == 0 {
			return nil
		}
		return l.store.Replace(ctx, l.key, survivors)
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

// Clear deletes the whole list. Clearing an empty list succeeds.
func (l *List[T]) Clear(ctx context.Context) error {
	return l.write(ctx, func() error {
		return l.store.Delete(ctx, l.key)
	})
}

// Len counts stored elements, including ones All would drop.
func (l *List[T]) Len(ctx context.Context) (int64, error) {
	return l.store.Len(ctx, l.key)
}

func (l *List[T]) write(ctx context.Context, fn func() error) error {
	if l.locker == nil {
		return fn()
	}
	return l.locker.WithLock(ctx, l.key, fn)
}

func (l *List[T]) drop(err *errors.DecodeError) {
	recordsDroppedTotal.WithLabelValues(l.key).Inc()
	logger.Log.Warn("dropping undecodable list element", "list", l.key, "index", err.Index, "error", err.Err)
}
