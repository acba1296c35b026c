package collection

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/itchan-dev/kvboard/shared/domain"
)

var (
	errNotObject = errors.New("element is not a json object")
	errMissingId = errors.New("record has no id")
)

func encode[T domain.Record](rec T) (string, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// unwrap returns the JSON object text of a stored element. It accepts the
// object itself and also a JSON string whose content is that object, which
// older writers produced by encoding twice.
func unwrap(raw string) (string, error) {
	data := bytes.TrimSpace([]byte(raw))
	if len(data) > 0 && data[0] == '"' {
		var inner string
		if err := json.Unmarshal(data, &inner); err != nil {
			return "", err
		}
		data = bytes.TrimSpace([]byte(inner))
	}
	if len(data) == 0 || data[0] != '{' {
		return "", errNotObject
	}
	return string(data), nil
}

// decodeObject reads a record from unwrapped object text.
func decodeObject[T domain.Record](obj string) (T, error) {
	var rec T
	if err := json.Unmarshal([]byte(obj), &rec); err != nil {
		return rec, err
	}
	if rec.RecordId() == "" {
		return rec, errMissingId
	}
	return rec, nil
}

func decode[T domain.Record](raw string) (T, error) {
	obj, err := unwrap(raw)
	if err != nil {
		var zero T
		return zero, err
	}
	return decodeObject[T](obj)
}
