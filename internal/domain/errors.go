/*
 *    Copyright 2025 blockarchitech
 *
 *    Licensed under the Apache License, Version 2.0 (the "License");
 *    you may not use this file except in compliance with the License.
 *    You may obtain a copy of the License at
 *
 *        http://www.apache.org/licenses/LICENSE-2.0
 *
 *    Unless required by applicable law or agreed to in writing, software
 *    distributed under the License is distributed on an "AS IS" BASIS,
 *    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *    See the License for the specific language governing permissions and
 *    limitations under the License.
 */

package domain

import (
	"errors"
	"fmt"
)

// ErrorCode classifies failures surfaced by the node layer.
type ErrorCode string

const (
	CodeMissingRequiredField ErrorCode = "missing_required_field"
	CodeUnknownOperation     ErrorCode = "unknown_operation"
	CodeRemoteRequest        ErrorCode = "remote_request"
	CodeInvalidInput         ErrorCode = "invalid_input"
)

type coder interface {
	Code() ErrorCode
}

// MissingRequiredFieldError reports a required field that resolved to empty.
// The request is never sent when this error is returned.
type MissingRequiredFieldError struct {
	Field     string
	Operation string
}

func NewMissingRequiredField(field, operation string) *MissingRequiredFieldError {
	return &MissingRequiredFieldError{Field: field, Operation: operation}
}

func (e *MissingRequiredFieldError) Error() string {
	return fmt.Sprintf("%s is required for %s operation", e.Field, e.Operation)
}

func (e *MissingRequiredFieldError) Code() ErrorCode { return CodeMissingRequiredField }

// UnknownOperationError reports an operation name outside a module's supported set.
type UnknownOperationError struct {
	Module    string
	Operation string
}

func NewUnknownOperation(module, operation string) *UnknownOperationError {
	return &UnknownOperationError{Module: module, Operation: operation}
}

func (e *UnknownOperationError) Error() string {
	if e.Module == "" {
		return fmt.Sprintf("unknown operation: %s", e.Operation)
	}
	return fmt.Sprintf("unknown operation for %s: %s", e.Module, e.Operation)
}

func (e *UnknownOperationError) Code() ErrorCode { return CodeUnknownOperation }

// RemoteRequestError is returned when the Reminders API answers with a non-2xx
// status, or when the request never completes. StatusCode is 0 for transport failures.
type RemoteRequestError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
	Err        error
}

func (e *RemoteRequestError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("request to Reminders API failed (%s %s): %v", e.Method, e.URL, e.Err)
	}
	return fmt.Sprintf("Reminders API returned status %d for %s %s: %s", e.StatusCode, e.Method, e.URL, e.Body)
}

func (e *RemoteRequestError) Unwrap() error { return e.Err }

func (e *RemoteRequestError) Code() ErrorCode { return CodeRemoteRequest }

// Is5xx reports whether the server answered with a 5xx status.
func (e *RemoteRequestError) Is5xx() bool {
	return e.StatusCode >= 500 && e.StatusCode < 600
}

// InvalidInputError wraps malformed invocation input, such as an undecodable payload.
type InvalidInputError struct {
	Message string
	Err     error
}

func NewInvalidInput(message string, err error) *InvalidInputError {
	return &InvalidInputError{Message: message, Err: err}
}

func (e *InvalidInputError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *InvalidInputError) Unwrap() error { return e.Err }

func (e *InvalidInputError) Code() ErrorCode { return CodeInvalidInput }

// CodeOf returns the code of the first classified error in err's chain.
func CodeOf(err error) (ErrorCode, bool) {
	var c coder
	if errors.As(err, &c) {
		return c.Code(), true
	}
	return "", false
}

// IsCode reports whether err carries the given code anywhere in its chain.
func IsCode(err error, code ErrorCode) bool {
	got, ok := CodeOf(err)
	return ok && got == code
}
