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

type ReplyService interface {
	List(ctx context.Context) ([]domain.Reply, error)
	Create(ctx context.Context, data domain.ReplyCreationData) (domain.Reply, error)
	Delete(ctx context.Context, id string) error
}

type Reply struct {
	storage   Collection[domain.Reply]
	validator ReplyValidator
	ids       IdGenerator
	sanitizer TextSanitizer
	cfg       config.Board
	now       func() time.Time
}

type ReplyValidator interface {
	Content(content string) error
}

// NewReply builds the replies service. sanitizer may be nil.
func NewReply(storage Collection[domain.Reply], validator ReplyValidator, ids IdGenerator, sanitizer TextSanitizer, cfg config.Board) *Reply {
	return &Reply{
		storage:   storage,
		validator: validator,
		ids:       ids,
		sanitizer: sanitizer,
		cfg:       cfg,
		now:       time.Now,
	}
}

// List returns every reply of every thread, newest first.
func (b *Reply) List(ctx context.Context) ([]domain.Reply, error) {
	return b.storage.All(ctx)
}

// Create stores a reply. The thread it points to is not looked up.
func (b *Reply) Create(ctx context.Context, data domain.ReplyCreationData) (domain.Reply, error) {
	data.Content = sanitize(b.sanitizer, data.Content)
	data.User = sanitize(b.sanitizer, data.User)

	if isBlank(data.ThreadId) || isBlank(data.Content) {
		return domain.Reply{}, &errors.ValidationError{Message: "threadId and content are required"}
	}
	if err := b.validator.Content(data.Content); err != nil {
		return domain.Reply{}, err
	}

	id, ts := stamp(b.ids, b.now)
	reply := domain.Reply{
		Id:        id,
		ThreadId:  data.ThreadId,
		Content:   data.Content,
		User:      userOrDefault(data.User, b.cfg.DefaultUser),
		Timestamp: ts,
	}

	if err := b.storage.Append(ctx, reply); err != nil {
		return domain.Reply{}, err
	}
	logger.Log.Info("reply created", "reply_id", reply.Id, "thread_id", reply.ThreadId)
	return reply, nil
}

func (b *Reply) Delete(ctx context.Context, id string) error {
	if isBlank(id) {
		return &errors.ValidationError{Message: "replyId is required"}
	}

	if id == domain.DeleteAll {
		if err := b.storage.Clear(ctx); err != nil {
			return err
		}
		logger.Log.Info("all replies deleted")
		return nil
	}

	removed, err := b.storage.RemoveWhere(ctx, func(r domain.Reply) bool { return r.Id == id })
	if err != nil {
		return err
	}
	if removed == 0 {
		return fmt.Errorf("reply %w", errors.NotFound)
	}
	logger.Log.Info("reply deleted", "reply_id", id)
	return nil
}
