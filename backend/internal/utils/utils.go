package utils

import (
	"fmt"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"

	"github.com/itchan-dev/kvboard/shared/errors"
)

// TextValidator enforces length limits on user supplied text.
// Presence of required fields is checked by the services.
type TextValidator struct {
	MaxTitleLen   int
	MaxContentLen int
}

func NewTextValidator(maxTitleLen, maxContentLen int) *TextValidator {
	return &TextValidator{MaxTitleLen: maxTitleLen, MaxContentLen: maxContentLen}
}

func (v *TextValidator) Title(title string) error {
	if v.MaxTitleLen > 0 && utf8.RuneCountInString(title) > v.MaxTitleLen {
		return &errors.ValidationError{Message: fmt.Sprintf("title is too long (max %d characters)", v.MaxTitleLen)}
	}
	return nil
}

func (v *TextValidator) Content(content string) error {
	if v.MaxContentLen > 0 && utf8.RuneCountInString(content) > v.MaxContentLen {
		return &errors.ValidationError{Message: fmt.Sprintf("content is too long (max %d characters)", v.MaxContentLen)}
	}
	return nil
}

// HTMLSanitizer strips every tag from posted text.
type HTMLSanitizer struct {
	policy *bluemonday.Policy
}

func NewHTMLSanitizer() *HTMLSanitizer {
	return &HTMLSanitizer{policy: bluemonday.StrictPolicy()}
}

func (s *HTMLSanitizer) Sanitize(text string) string {
	return s.policy.Sanitize(text)
}
