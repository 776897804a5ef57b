// SPDX-FileCopyrightText: © 2025 LearnHub
//
// SPDX-License-Identifier: Apache-2.0

package media

import (
	"context"
	"errors"
	"path"
	"strings"
	"time"

	"github.com/aws/smithy-go"

	"github.com/learnhub/learnhub-media-sdk/sdk/config"
	"github.com/learnhub/learnhub-media-sdk/sdk/utils"
)

type s3Backend struct {
	client    *config.S3Client
	threshold int64
}

func (b *s3Backend) name() string { return config.BackendS3 }

// attempt stores the file under {folder}/{category}/{uuid}{ext}; the S3 API
// returns no asset description, so the result is built from the request.
func (b *s3Backend) attempt(ctx context.Context, f File, folder string, category Category, pr *progressReader) (*Result, error) {
	key := utils.NewObjectKey(path.Join(folder, string(category)), f.Name)
	contentType := f.MediaType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	if _, err := b.client.PutObject(ctx, key, contentType, pr, f.Size, b.threshold); err != nil {
		return nil, err
	}

	ext := path.Ext(key)
	return &Result{
		SecureURL:        b.client.PublicURL(key),
		PublicID:         strings.TrimSuffix(key, ext),
		ResourceType:     category,
		Format:           strings.TrimPrefix(ext, "."),
		Bytes:            f.Size,
		CreatedAt:        time.Now().UTC(),
		OriginalFilename: strings.TrimSuffix(f.Name, path.Ext(f.Name)),
	}, nil
}

// s3Message prefers the service's own error message over the SDK wrapping.
func s3Message(err error) string {
	var ae smithy.APIError
	if errors.As(err, &ae) {
		if msg := ae.ErrorMessage(); msg != "" {
			return msg
		}
		return ae.ErrorCode()
	}
	return err.Error()
}
