package entities

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors
var (
	ErrEmptyMeetingText = errors.New("meeting text is empty")
	ErrMeetingNotFound  = errors.New("meeting record not found")
	ErrReportNotFound   = errors.New("report not found")
	ErrNoTaskDatabase   = errors.New("task database is not configured")
)

// ExtractionError means the model reply could not be read as a JSON object
type ExtractionError struct {
	Reason string
	Raw    string
	Err    error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("extraction failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("extraction failed: %s", e.Reason)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// NoModelAvailableError means none of the preferred models is served
type NoModelAvailableError struct {
	Preferences []string
	Available   []string
}

func (e *NoModelAvailableError) Error() string {
	return fmt.Sprintf("no preferred model available (wanted %s, provider offers %d models)",
		strings.Join(e.Preferences, ", "), len(e.Available))
}

// TransportError wraps a failed call to an external service
type TransportError struct {
	Service    string
	Op         string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s: status %d: %v", e.Service, e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Service, e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// TranscriptionError means audio could not be turned into text
type TranscriptionError struct {
	Err error
}

func (e *TranscriptionError) Error() string {
	return fmt.Sprintf("transcription failed: %v", e.Err)
}

func (e *TranscriptionError) Unwrap() error { return e.Err }

// StoreError is a failure reported by the external task store
type StoreError struct {
	Op         string
	StatusCode int
	Code       string
	Message    string
	Err        error
}

func (e *StoreError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("task store %s failed (status %d, %s): %s", e.Op, e.StatusCode, e.Code, msg)
	}
	return fmt.Sprintf("task store %s failed: %s", e.Op, msg)
}

func (e *StoreError) Unwrap() error { return e.Err }

// ValidationError is a store rejection of the submitted task fields
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// DeliveryError is a transport failure while sending a notification
type DeliveryError struct {
	Recipient string
	Err       error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("delivery to %s failed: %v", e.Recipient, e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }
