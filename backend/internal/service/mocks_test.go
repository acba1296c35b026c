package service

import (
	"context"
	"strings"
	"sync"

	"github.com/itchan-dev/kvboard/shared/domain"
)

// --- Mocks ---

// MockCollection mocks Collection[T] with an in-memory list (newest first)
// unless a func override is set.
type MockCollection[T domain.Record] struct {
	allFunc         func(ctx context.Context) ([]T, error)
	appendFunc      func(ctx context.Context, rec T) error
	removeWhereFunc func(ctx context.Context, match func(T) bool) (int, error)
	clearFunc       func(ctx context.Context) error

	mu          sync.Mutex
	records     []T
	appendCalls int
	removeCalls int
	clearCalls  int
}

func (m *MockCollection[T]) All(ctx context.Context) ([]T, error) {
	if m.allFunc != nil {
		return m.allFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return append(make([]T, 0, len(m.records)), m.records...), nil
}

func (m *MockCollection[T]) Append(ctx context.Context, rec T) error {
	m.mu.Lock()
	m.appendCalls++
	m.mu.Unlock()

	if m.appendFunc != nil {
		return m.appendFunc(ctx, rec)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append([]T{rec}, m.records...)
	return nil
}

func (m *MockCollection[T]) RemoveWhere(ctx context.Context, match func(T) bool) (int, error) {
	m.mu.Lock()
	m.removeCalls++
	m.mu.Unlock()

	if m.removeWhereFunc != nil {
		return m.removeWhereFunc(ctx, match)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.records[:0:0]
	for _, rec := range m.records {
		if !match(rec) {
			kept = append(kept, rec)
		}
	}
	removed := len(m.records) - len(kept)
	m.records = kept
	return removed, nil
}

func (m *MockCollection[T]) Clear(ctx context.Context) error {
	m.mu.Lock()
	m.clearCalls++
	m.mu.Unlock()

	if m.clearFunc != nil {
		return m.clearFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = nil
	return nil
}

// MockValidator mocks ThreadValidator and ReplyValidator.
type MockValidator struct {
	titleFunc   func(title string) error
	contentFunc func(content string) error
}

func (m *MockValidator) Title(title string) error {
	if m.titleFunc != nil {
		return m.titleFunc(title)
	}
	return nil // Default valid
}

func (m *MockValidator) Content(content string) error {
	if m.contentFunc != nil {
		return m.contentFunc(content)
	}
	return nil // Default valid
}

type upperSanitizer struct{}

func (upperSanitizer) Sanitize(text string) string {
	return "[" + text + "]"
}

// markupDropSanitizer empties anything that contains markup, like a strict
// HTML policy does for tag-only input.
type markupDropSanitizer struct{}

func (markupDropSanitizer) Sanitize(text string) string {
	if strings.ContainsAny(text, "<>") {
		return ""
	}
	return text
}
