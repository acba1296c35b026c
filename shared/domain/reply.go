package domain

// Reply belongs to a thread by ThreadId only; the thread is not required to exist.
type Reply struct {
	Id        string `json:"id"`
	ThreadId  string `json:"threadId"`
	Content   string `json:"content"`
	User      string `json:"user"`
	Timestamp int64  `json:"timestamp"` // epoch milliseconds
}

func (r Reply) RecordId() string { return r.Id }

type ReplyCreationData struct {
	ThreadId string
	Content  string
	User     string
}
