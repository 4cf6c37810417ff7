package core

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// FieldError is used to indicate an error with a specific form field.
type FieldError struct {
	Field string
	Error string
}

// ValidationError is a client-side validation failure. It never reaches the network.
type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err != nil {
		return err.Err.Error()
	}
	if len(err.Fields) == 0 {
		return ""
	}
	msgs := make([]string, 0, len(err.Fields))
	for _, fe := range err.Fields {
		msgs = append(msgs, fe.Field+": "+fe.Error)
	}
	sort.Strings(msgs)
	return strings.Join(msgs, "; ")
}

// FieldMap returns the field errors keyed by field name.
func (err ValidationError) FieldMap() map[string]string {
	m := make(map[string]string, len(err.Fields))
	for _, fe := range err.Fields {
		m[fe.Field] = fe.Error
	}
	return m
}

func IsValidationError(err error) bool {
	_, ok := errors.Cause(err).(*ValidationError)
	return ok
}

// ErrorKind classifies failures coming back from the backend.
type ErrorKind int

const (
	KindNetwork    ErrorKind = iota + 1 // transport failure, no response
	KindValidation                      // 4xx
	KindServer                          // 5xx
)

func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindValidation:
		return "validation"
	case KindServer:
		return "server"
	default:
		return "unknown"
	}
}

// APIError is returned by the REST gateway for any failed request.
type APIError struct {
	Kind       ErrorKind
	Method     string
	Path       string
	StatusCode int
	Message    string // server supplied message, if any
	Err        error
}

func (err *APIError) Error() string {
	switch err.Kind {
	case KindNetwork:
		return fmt.Sprintf("%s %s: %v", err.Method, err.Path, err.Err)
	default:
		if err.Message != "" {
			return fmt.Sprintf("%s %s: %d: %s", err.Method, err.Path, err.StatusCode, err.Message)
		}
		return fmt.Sprintf("%s %s: %d %s", err.Method, err.Path, err.StatusCode, http.StatusText(err.StatusCode))
	}
}

// AsAPIError unwraps err down to an *APIError.
func AsAPIError(err error) (*APIError, bool) {
	apiErr, ok := errors.Cause(err).(*APIError)
	return apiErr, ok
}

func IsNotFound(err error) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.StatusCode == http.StatusNotFound
}

// UserMessage renders err the way it is shown in a notification.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if vErr, ok := errors.Cause(err).(*ValidationError); ok {
		return vErr.Error()
	}
	apiErr, ok := AsAPIError(err)
	if !ok {
		return err.Error()
	}
	switch apiErr.Kind {
	case KindNetwork:
		return "Falha de comunicação com o servidor."
	case KindServer:
		return "Erro interno do servidor. Tente novamente mais tarde."
	default:
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return "Requisição inválida."
	}
}
