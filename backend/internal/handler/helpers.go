package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/itchan-dev/kvboard/shared/utils"
)

// readDeleteId accepts either a request object such as {"threadId": "123"}
// or a bare JSON string such as "all".
func readDeleteId[T any](r *http.Request, pick func(T) string) (string, error) {
	var raw json.RawMessage
	if err := utils.Decode(r.Body, &raw); err != nil {
		return "", err
	}

	var bare string
	if err := json.Unmarshal(raw, &bare); err == nil {
		return bare, nil
	}

	var body T
	if err := utils.DecodeValidate(io.NopCloser(bytes.NewReader(raw)), &body); err != nil {
		return "", err
	}
	return pick(body), nil
}
