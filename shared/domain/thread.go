package domain

// Thread is stored as one JSON element of the threads list.
type Thread struct {
	Id        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	User      string `json:"user"`
	Timestamp int64  `json:"timestamp"` // epoch milliseconds
}

func (t Thread) RecordId() string { return t.Id }

// to iterate thru layers: handler -> service -> storage
type ThreadCreationData struct {
	Title   string
	Content string
	User    string
}
