package service

import (
	"context"
	"strings"
	"time"

	"github.com/itchan-dev/kvboard/shared/domain"
)

// Collection is the list-as-table persistence behind a resource.
type Collection[T domain.Record] interface {
	All(ctx context.Context) ([]T, error)
	Append(ctx context.Context, rec T) error
	RemoveWhere(ctx context.Context, match func(T) bool) (int, error)
	Clear(ctx context.Context) error
}

type TextSanitizer interface {
	Sanitize(text string) string
}

// sanitize runs text through s; a nil sanitizer leaves text as is.
func sanitize(s TextSanitizer, text string) string {
	if s == nil {
		return text
	}
	return s.Sanitize(text)
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func userOrDefault(user, fallback string) string {
	if isBlank(user) {
		return fallback
	}
	return user
}

// stamp returns the id and epoch-millisecond timestamp for a new record.
func stamp(ids IdGenerator, now func() time.Time) (string, int64) {
	t := now()
	return ids.NewId(t), t.UnixMilli()
}
