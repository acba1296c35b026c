package service

import (
	"context"
	"errors"
	"testing"

	"github.com/itchan-dev/kvboard/shared/domain"
	internal_errors "github.com/itchan-dev/kvboard/shared/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestReplyService(storage *MockCollection[domain.Reply], validator *MockValidator) *Reply {
	s := NewReply(storage, validator, &TimestampIds{}, nil, testBoardConfig())
	s.now = fixedClock(1700000000500)
	return s
}

func TestReplyCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("Successful creation", func(t *testing.T) {
		storage := &MockCollection[domain.Reply]{}
		service := newTestReplyService(storage, &MockValidator{})

		created, err := service.Create(ctx, domain.ReplyCreationData{ThreadId: "1700000000000", Content: "hi", User: "bob"})

		require.NoError(t, err)
		assert.Equal(t, domain.Reply{
			Id:        "1700000000500",
			ThreadId:  "1700000000000",
			Content:   "hi",
			User:      "bob",
			Timestamp: 1700000000500,
		}, created)

		listed, err := service.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []domain.Reply{created}, listed)
	})

	t.Run("Content emptied by the sanitizer is rejected", func(t *testing.T) {
		storage := &MockCollection[domain.Reply]{}
		service := NewReply(storage, &MockValidator{}, &TimestampIds{}, markupDropSanitizer{}, testBoardConfig())

		_, err := service.Create(ctx, domain.ReplyCreationData{ThreadId: "1", Content: "<script>x</script>", User: "<b>bob</b>"})

		var validationErr *internal_errors.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Zero(t, storage.appendCalls)
	})

	t.Run("Orphan replies are allowed", func(t *testing.T) {
		storage := &MockCollection[domain.Reply]{}
		service := newTestReplyService(storage, &MockValidator{})

		created, err := service.Create(ctx, domain.ReplyCreationData{ThreadId: "no-such-thread", Content: "hi"})

		require.NoError(t, err)
		assert.Equal(t, "no-such-thread", created.ThreadId)
		assert.Equal(t, "Anonymous", created.User)
	})

	t.Run("Missing threadId or content", func(t *testing.T) {
		cases := map[string]domain.ReplyCreationData{
			"missing threadId": {Content: "c"},
			"missing content":  {ThreadId: "1"},
			"blank threadId":   {ThreadId: "  ", Content: "c"},
		}
		for name, data := range cases {
			t.Run(name, func(t *testing.T) {
				storage := &MockCollection[domain.Reply]{}
				service := newTestReplyService(storage, &MockValidator{})

				_, err := service.Create(ctx, data)

				var validationErr *internal_errors.ValidationError
				require.ErrorAs(t, err, &validationErr)
				assert.Equal(t, "threadId and content are required", validationErr.Message)
				assert.Zero(t, storage.appendCalls)
			})
		}
	})

	t.Run("Content too long", func(t *testing.T) {
		storage := &MockCollection[domain.Reply]{}
		service := newTestReplyService(storage, &MockValidator{
			contentFunc: func(string) error { return &internal_errors.ValidationError{Message: "content is too long"} },
		})

		_, err := service.Create(ctx, domain.ReplyCreationData{ThreadId: "1", Content: "c"})

		assert.True(t, internal_errors.Is[*internal_errors.ValidationError](err))
		assert.Zero(t, storage.appendCalls)
	})

	t.Run("Storage error", func(t *testing.T) {
		storeErr := errors.New("down")
		storage := &MockCollection[domain.Reply]{
			appendFunc: func(context.Context, domain.Reply) error { return storeErr },
		}
		service := newTestReplyService(storage, &MockValidator{})

		_, err := service.Create(ctx, domain.ReplyCreationData{ThreadId: "1", Content: "c"})

		assert.ErrorIs(t, err, storeErr)
	})
}

func TestReplyDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("Delete one", func(t *testing.T) {
		storage := &MockCollection[domain.Reply]{}
		service := newTestReplyService(storage, &MockValidator{})
		keep, err := service.Create(ctx, domain.ReplyCreationData{ThreadId: "1", Content: "keep"})
		require.NoError(t, err)
		drop, err := service.Create(ctx, domain.ReplyCreationData{ThreadId: "1", Content: "drop"})
		require.NoError(t, err)

		require.NoError(t, service.Delete(ctx, drop.Id))

		listed, err := service.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []domain.Reply{keep}, listed)
	})

	t.Run("Not found", func(t *testing.T) {
		storage := &MockCollection[domain.Reply]{}
		service := newTestReplyService(storage, &MockValidator{})

		err := service.Delete(ctx, "missing")

		assert.ErrorIs(t, err, internal_errors.NotFound)
		assert.EqualError(t, err, "reply not found")
	})

	t.Run("Delete all is idempotent", func(t *testing.T) {
		storage := &MockCollection[domain.Reply]{}
		service := newTestReplyService(storage, &MockValidator{})

		require.NoError(t, service.Delete(ctx, domain.DeleteAll))
		require.NoError(t, service.Delete(ctx, domain.DeleteAll))
		assert.Equal(t, 2, storage.clearCalls)
	})

	t.Run("Blank id", func(t *testing.T) {
		storage := &MockCollection[domain.Reply]{}
		service := newTestReplyService(storage, &MockValidator{})

		err := service.Delete(ctx, "")

		var validationErr *internal_errors.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "replyId is required", validationErr.Message)
	})
}
