// Copyright (c) 2025, The yaspe Authors. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode classifies a failure for callers, exit handling and HTTP status.
type ErrorCode string

const (
	ErrCodeNotFound          ErrorCode = "NOT_FOUND"           // capture or config file missing
	ErrCodeTimeout           ErrorCode = "TIMEOUT"             // scan outlived its budget
	ErrCodeInternal          ErrorCode = "INTERNAL"            // bug, or an unclassified error
	ErrCodeInvalidRequest    ErrorCode = "INVALID_REQUEST"     // bad flag, query parameter or upload
	ErrCodeIO                ErrorCode = "IO_ERROR"            // capture could not be read or output written
	ErrCodeRateLimitExceeded ErrorCode = "RATE_LIMIT_EXCEEDED" // API token bucket empty
	ErrCodeMethodNotAllowed  ErrorCode = "METHOD_NOT_ALLOWED"
	ErrCodeUnavailable       ErrorCode = "SERVICE_UNAVAILABLE"
)

var httpStatus = map[ErrorCode]int{
	ErrCodeNotFound:          http.StatusNotFound,
	ErrCodeTimeout:           http.StatusGatewayTimeout,
	ErrCodeInvalidRequest:    http.StatusBadRequest,
	ErrCodeRateLimitExceeded: http.StatusTooManyRequests,
	ErrCodeMethodNotAllowed:  http.StatusMethodNotAllowed,
	ErrCodeUnavailable:       http.StatusServiceUnavailable,
}

// StructuredError is an error with a code, a message for humans, an
// optional cause and optional key/value context (path, limit, section...).
type StructuredError struct {
	Code    ErrorCode
	Message string
	Cause   error
	Context map[string]any
}

func (e *StructuredError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
}

// Unwrap exposes Cause to errors.Is and errors.As.
func (e *StructuredError) Unwrap() error {
	return e.Cause
}

// New returns an error with no cause and no context.
func New(code ErrorCode, message string) *StructuredError {
	return WrapWithContext(code, message, nil, nil)
}

// NewWithContext returns an error carrying context.
func NewWithContext(code ErrorCode, message string, context map[string]any) *StructuredError {
	return WrapWithContext(code, message, nil, context)
}

// Wrap classifies cause under code.
func Wrap(code ErrorCode, message string, cause error) *StructuredError {
	return WrapWithContext(code, message, cause, nil)
}

// WrapWithContext classifies cause under code and attaches context.
func WrapWithContext(code ErrorCode, message string, cause error, context map[string]any) *StructuredError {
	return &StructuredError{Code: code, Message: message, Cause: cause, Context: context}
}

// CodeOf returns the code of the outermost StructuredError in err's chain,
// or ErrCodeInternal when there is none.
func CodeOf(err error) ErrorCode {
	if se := (*StructuredError)(nil); errors.As(err, &se) {
		return se.Code
	}
	return ErrCodeInternal
}

// HTTPStatus maps a code to the status the API answers with; unknown codes
// are 500.
func HTTPStatus(code ErrorCode) int {
	if s, ok := httpStatus[code]; ok {
		return s
	}
	return http.StatusInternalServerError
}
