package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound              = errors.New("resource not found")
	ErrTemplateNotFound      = errors.New("template not found")
	ErrTemplateInactive      = errors.New("template is inactive")
	ErrInvalidTemplateFields = errors.New("template fields are not a valid field config list")
	ErrSessionNotFound       = errors.New("form session not found")
	ErrFieldNotFound         = errors.New("field not found in template")
	ErrNotMatrixField        = errors.New("field is not a matrix selector")
	ErrInvalidSessionMode    = errors.New("invalid session mode; allowed: basic, advanced")
	ErrProposalNotFound      = errors.New("proposal not found")
	ErrProposalNotCompleted  = errors.New("proposal has not completed generation")
	ErrMissingRequired       = errors.New("required fields are missing")
	ErrUnsupportedFileType   = errors.New("unsupported file type")
	ErrFileTooLarge          = errors.New("file exceeds maximum allowed size")
	ErrUploadFailed          = errors.New("file upload to storage failed")
)

// MissingFieldsError reports every unfilled required field in one error so
// the caller can surface a single message instead of sequential alerts.
type MissingFieldsError struct {
	Labels []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Labels, ", "))
}

func (e *MissingFieldsError) Unwrap() error {
	return ErrMissingRequired
}
