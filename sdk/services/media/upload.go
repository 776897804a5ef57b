// SPDX-FileCopyrightText: © 2025 LearnHub
//
// SPDX-License-Identifier: Apache-2.0

package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
)

// Upload sends f to the configured backend:
// - auto category is resolved from the media type (sniffed when empty)
// - up to MaxAttempts attempts, each bounded by AttemptTimeout
// - only network failures are retried, after attempt × BackoffStep
// - the last attempt's *UploadError is returned as-is
//
// Progress restarts from 0 on every attempt.
func (s *MediaService) Upload(ctx context.Context, f File, opts UploadOptions) (*Result, error) {
	if f.Content == nil {
		return nil, errors.New("file content is required")
	}
	if f.Size <= 0 {
		return nil, errors.New("file is empty or has unknown size")
	}

	folder := opts.Folder
	if folder == "" {
		folder = DefaultFolder
	}
	folder = strings.Trim(strings.TrimSpace(folder), "/")
	if folder == "" {
		return nil, errors.New("destination folder must not be empty")
	}

	category, err := ParseCategory(string(opts.Category))
	if err != nil {
		return nil, err
	}

	if f.MediaType == "" {
		mt, err := mimetype.DetectReader(io.NewSectionReader(f.Content, 0, f.Size))
		if err != nil {
			return nil, fmt.Errorf("mime detection failed: %w", err)
		}
		f.MediaType = mt.String()
	}
	category = resolveCategory(category, f.MediaType)

	var last *UploadError
	for attempt := 1; attempt <= s.upload.MaxAttempts; attempt++ {
		if ctx.Err() != nil {
			return nil, &UploadError{Kind: KindAborted, Message: "upload aborted", Attempts: attempt - 1, Err: ctx.Err()}
		}

		res, uerr := s.runAttempt(ctx, f, folder, category, opts.OnProgress)
		if uerr == nil {
			return res, nil
		}
		uerr.Attempts = attempt
		last = uerr

		if !uerr.Retryable() || attempt == s.upload.MaxAttempts {
			break
		}

		wait := time.Duration(attempt) * s.upload.BackoffStep
		s.logf("upload of %s failed (attempt %d/%d): %s; retrying in %s",
			f.Name, attempt, s.upload.MaxAttempts, uerr.Message, wait)
		if err := s.sleep(ctx, wait); err != nil {
			return nil, &UploadError{Kind: KindAborted, Message: "upload aborted", Attempts: attempt, Err: err}
		}
	}
	return nil, last
}

func (s *MediaService) runAttempt(ctx context.Context, f File, folder string, category Category, onProgress ProgressFunc) (*Result, *UploadError) {
	attemptCtx, cancel := context.WithTimeout(ctx, s.upload.AttemptTimeout)
	defer cancel()

	pr := newProgressReader(f, onProgress)
	defer pr.close()
	pr.start()

	res, err := s.backend.attempt(attemptCtx, f, folder, category, pr)
	if err != nil {
		return nil, classify(ctx, attemptCtx, err)
	}

	if res.Bytes == 0 {
		res.Bytes = f.Size
	}
	if res.ResourceType == "" {
		res.ResourceType = category
	}
	res.Backend = s.backend.name()
	return res, nil
}
