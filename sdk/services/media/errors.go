// SPDX-FileCopyrightText: © 2025 LearnHub
//
// SPDX-License-Identifier: Apache-2.0

package media

import (
	"context"
	"errors"
	"fmt"
)

type ErrorKind string

const (
	KindNetwork        ErrorKind = "network"
	KindTimeout        ErrorKind = "timeout"
	KindAborted        ErrorKind = "aborted"
	KindServerRejected ErrorKind = "server-rejected"
)

// UploadError is the terminal failure of an Upload call.
type UploadError struct {
	Kind       ErrorKind
	Message    string
	StatusCode int // 0 unless Kind is server-rejected
	Attempts   int
	Err        error
}

func (e *UploadError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("upload %s (status %d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("upload %s: %s", e.Kind, e.Message)
}

func (e *UploadError) Unwrap() error { return e.Err }

// Retryable reports whether another attempt may succeed with the same request.
func (e *UploadError) Retryable() bool { return e.Kind == KindNetwork }

// IsRetryable is true for network-classified upload errors.
func IsRetryable(err error) bool {
	var ue *UploadError
	return errors.As(err, &ue) && ue.Retryable()
}

// KindOf returns the classification of err, or "" if err is not an UploadError.
func KindOf(err error) ErrorKind {
	var ue *UploadError
	if errors.As(err, &ue) {
		return ue.Kind
	}
	return ""
}

func rejected(status int, message string, cause error) *UploadError {
	if message == "" {
		message = fmt.Sprintf("server responded with status %d", status)
	}
	return &UploadError{Kind: KindServerRejected, Message: message, StatusCode: status, Err: cause}
}

// classify maps an attempt failure onto the taxonomy. parent is the caller's
// context and attempt the per-attempt context derived from it. Only the
// attempt deadline is a timeout; dial and handshake timeouts of the
// transport are network failures and get retried.
func classify(parent, attempt context.Context, err error) *UploadError {
	var ue *UploadError
	if errors.As(err, &ue) {
		return ue
	}

	if parent.Err() != nil {
		return &UploadError{Kind: KindAborted, Message: "upload aborted", Err: err}
	}
	if errors.Is(attempt.Err(), context.DeadlineExceeded) {
		return &UploadError{Kind: KindTimeout, Message: "upload timed out", Err: err}
	}

	// S3 SDK: a response was received, so the request was rejected
	var se interface{ HTTPStatusCode() int }
	if errors.As(err, &se) && se.HTTPStatusCode() != 0 {
		return rejected(se.HTTPStatusCode(), s3Message(err), err)
	}

	if errors.Is(err, context.Canceled) {
		return &UploadError{Kind: KindAborted, Message: "upload aborted", Err: err}
	}
	return &UploadError{Kind: KindNetwork, Message: err.Error(), Err: err}
}

// ValidationError is returned by Validate.
type ValidationError struct {
	Field string
	Cause string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Cause)
}
