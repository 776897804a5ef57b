// SPDX-FileCopyrightText: © 2025 LearnHub
//
// SPDX-License-Identifier: Apache-2.0

package media

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// UploadMany runs independent uploads, at most BatchConcurrency at a time.
// Outcomes keep the order of items and a failed item does not stop the rest.
func (s *MediaService) UploadMany(ctx context.Context, items []BatchItem) []BatchOutcome {
	out := make([]BatchOutcome, len(items))

	var g errgroup.Group
	g.SetLimit(s.upload.BatchConcurrency)

	for i, it := range items {
		out[i].Name = it.File.Name
		g.Go(func() error {
			res, err := s.Upload(ctx, it.File, it.Options)
			out[i].Result = res
			out[i].Err = err
			return nil
		})
	}
	_ = g.Wait()
	return out
}

// Failed returns the outcomes that ended in an error.
func Failed(outcomes []BatchOutcome) []BatchOutcome {
	var failed []BatchOutcome
	for _, o := range outcomes {
		if o.Err != nil {
			failed = append(failed, o)
		}
	}
	return failed
}
