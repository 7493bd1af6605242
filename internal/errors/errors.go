package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode identifies the class of a fatal redaction failure
type ErrorCode string

const (
	ErrorImageDecode    ErrorCode = "IMAGE_DECODE_FAILED"
	ErrorExtraction     ErrorCode = "EXTRACTION_FAILED"
	ErrorClassification ErrorCode = "CLASSIFICATION_FAILED"
	ErrorOutput         ErrorCode = "OUTPUT_FAILED"
)

// RedactionError is returned for every failure that aborts the pipeline.
// No output image is produced when one is returned.
type RedactionError struct {
	Code    ErrorCode
	Stage   string
	Message string
	Details map[string]interface{}
	Cause   error
}

func (e *RedactionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *RedactionError) Unwrap() error {
	return e.Cause
}

func NewImageDecodeError(path string, cause error) *RedactionError {
	msg := "image is missing or unreadable"
	if path != "" {
		msg = fmt.Sprintf("could not read image %q", path)
	}
	return &RedactionError{
		Code:    ErrorImageDecode,
		Stage:   "load",
		Message: msg,
		Details: map[string]interface{}{"path": path},
		Cause:   cause,
	}
}

func NewExtractionError(engine string, cause error) *RedactionError {
	return &RedactionError{
		Code:    ErrorExtraction,
		Stage:   "extract",
		Message: fmt.Sprintf("text extraction failed (engine: %s)", engine),
		Details: map[string]interface{}{"engine": engine},
		Cause:   cause,
	}
}

func NewClassificationError(provider string, cause error) *RedactionError {
	return &RedactionError{
		Code:    ErrorClassification,
		Stage:   "detect",
		Message: fmt.Sprintf("semantic classification failed (provider: %s)", provider),
		Details: map[string]interface{}{"provider": provider},
		Cause:   cause,
	}
}

func NewOutputError(path string, cause error) *RedactionError {
	return &RedactionError{
		Code:    ErrorOutput,
		Stage:   "write",
		Message: fmt.Sprintf("could not write output %q", path),
		Details: map[string]interface{}{"path": path},
		Cause:   cause,
	}
}

// HasCode reports whether err wraps a RedactionError with the given code
func HasCode(err error, code ErrorCode) bool {
	var re *RedactionError
	if stderrors.As(err, &re) {
		return re.Code == code
	}
	return false
}

// ToMap flattens the error for structured logging and reports
func (e *RedactionError) ToMap() map[string]interface{} {
	result := map[string]interface{}{
		"error_code": string(e.Code),
		"stage":      e.Stage,
		"message":    e.Message,
	}
	for k, v := range e.Details {
		result[k] = v
	}
	if e.Cause != nil {
		result["cause"] = e.Cause.Error()
	}
	return result
}
