package domain

// Record is anything kept as one element of a list-as-table collection.
type Record interface {
	RecordId() string
}

// DeleteAll is the delete target that clears a whole collection.
const DeleteAll = "all"
