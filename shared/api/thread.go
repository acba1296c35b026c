package api

// Request DTOs

type CreateThreadRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
	User    string `json:"user,omitempty"`
}

type DeleteThreadRequest struct {
	ThreadId string `json:"threadId" validate:"required"`
}
