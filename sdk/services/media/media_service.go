// SPDX-FileCopyrightText: © 2025 LearnHub
//
// SPDX-License-Identifier: Apache-2.0

package media

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/learnhub/learnhub-media-sdk/sdk/config"
)

// backend performs exactly one upload attempt. Server rejections come back
// as *UploadError; any other error is classified by the caller.
type backend interface {
	name() string
	attempt(ctx context.Context, f File, folder string, category Category, pr *progressReader) (*Result, error)
}

type MediaService struct {
	backend backend
	http    config.MediaHTTP
	upload  config.UploadConfig

	// Logf receives retry notices; nil discards them.
	Logf func(format string, a ...any)

	sleep func(ctx context.Context, d time.Duration) error
}

func NewMediaService(ctx context.Context, conf config.Config) (*MediaService, error) {
	return newMediaService(ctx, conf, nil)
}

// NewMediaServiceWithClient is NewMediaService with a caller-supplied HTTP
// client for the media backend (proxies, custom transports, tests).
func NewMediaServiceWithClient(ctx context.Context, conf config.Config, httpClient *http.Client) (*MediaService, error) {
	return newMediaService(ctx, conf, httpClient)
}

func newMediaService(ctx context.Context, conf config.Config, httpClient *http.Client) (*MediaService, error) {
	conf = conf.WithDefaults()
	if err := conf.Validate(); err != nil {
		return nil, err
	}

	svc := &MediaService{
		http:   config.NewMediaHTTP(httpClient, conf.Media),
		upload: conf.Upload,
		sleep:  sleepCtx,
	}

	switch conf.Backend {
	case config.BackendS3:
		s3c, err := config.NewS3Client(ctx, conf.S3)
		if err != nil {
			return nil, fmt.Errorf("S3 init failed: %w", err)
		}
		svc.backend = &s3Backend{client: s3c, threshold: conf.Upload.MultipartThreshold}
	default:
		svc.backend = &mediaBackend{http: svc.http, preset: conf.Media.UploadPreset}
	}
	return svc, nil
}

func (s *MediaService) logf(format string, a ...any) {
	if s.Logf != nil {
		s.Logf(format, a...)
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
