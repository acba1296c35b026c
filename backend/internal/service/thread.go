package service

import (
	"context"
	"fmt"
	"time"

	"github.com/itchan-dev/kvboard/shared/config"
	"github.com/itchan-dev/kvboard/shared/domain"
	"github.com/itchan-dev/kvboard/shared/errors"
	"github.com/itchan-dev/kvboard/shared/logger"
)

type ThreadService interface {
	List(ctx context.Context) ([]domain.Thread, error)
	Create(ctx context.Context, data domain.ThreadCreationData) (domain.Thread, error)
	Delete(ctx context.Context, id string) error
}

type Thread struct {
	storage   Collection[domain.Thread]
	validator ThreadValidator
	ids       IdGenerator
	sanitizer TextSanitizer
	cfg       config.Board
	now       func() time.Time
}

type ThreadValidator interface {
	Title(title string) error
	Content(content string) error
}

// NewThread builds the threads service. sanitizer may be nil.
func NewThread(storage Collection[domain.Thread], validator ThreadValidator, ids IdGenerator, sanitizer TextSanitizer, cfg config.Board) *Thread {
	return &Thread{
		storage:   storage,
		validator: validator,
		ids:       ids,
		sanitizer: sanitizer,
		cfg:       cfg,
		now:       time.Now,
	}
}

// List returns every thread, newest first.
func (b *Thread) List(ctx context.Context) ([]domain.Thread, error) {
	return b.storage.All(ctx)
}

func (b *Thread) Create(ctx context.Context, data domain.ThreadCreationData) (domain.Thread, error) {
	// checks run on what will be stored, sanitizing may empty a field
	data.Title = sanitize(b.sanitizer, data.Title)
	data.Content = sanitize(b.sanitizer, data.Content)
	data.User = sanitize(b.sanitizer, data.User)

	if isBlank(data.Title) || isBlank(data.Content) {
		return domain.Thread{}, &errors.ValidationError{Message: "title and content are required"}
	}
	if err := b.validator.Title(data.Title); err != nil {
		return domain.Thread{}, err
	}
	if err := b.validator.Content(data.Content); err != nil {
		return domain.Thread{}, err
	}

	id, ts := stamp(b.ids, b.now)
	thread := domain.Thread{
		Id:        id,
		Title:     data.Title,
		Content:   data.Content,
		User:      userOrDefault(data.User, b.cfg.DefaultUser),
		Timestamp: ts,
	}

	if err := b.storage.Append(ctx, thread); err != nil {
		return domain.Thread{}, err
	}
	logger.Log.Info("thread created", "thread_id", thread.Id)
	return thread, nil
}

// Delete removes one thread by id, or every thread when id is domain.DeleteAll.
// Replies of a deleted thread are left in place.
func (b *Thread) Delete(ctx context.Context, id string) error {
	if isBlank(id) {
		return &errors.ValidationError{Message: "threadId is required"}
	}

	if id == domain.DeleteAll {
		if err := b.storage.Clear(ctx); err != nil {
			return err
		}
		logger.Log.Info("all threads deleted")
		return nil
	}

	removed, err := b.storage.RemoveWhere(ctx, func(t domain.Thread) bool { return t.Id == id })
	if err != nil {
		return err
	}
	if removed == 0 {
		return fmt.Errorf("thread %w", errors.NotFound)
	}
	logger.Log.Info("thread deleted", "thread_id", id)
	return nil
}
