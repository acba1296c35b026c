package api

// Request DTOs

type CreateReplyRequest struct {
	ThreadId string `json:"threadId" validate:"required"`
	Content  string `json:"content" validate:"required"`
	User     string `json:"user,omitempty"`
}

type DeleteReplyRequest struct {
	ReplyId string `json:"replyId" validate:"required"`
}
