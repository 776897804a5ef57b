// SPDX-FileCopyrightText: © 2025 LearnHub
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type S3Client struct {
	s3            *s3.Client
	bucket        string
	endpointURL   string
	region        string
	publicBaseURL string
}

type S3Object struct {
	Bucket    string
	Key       string
	ETag      string
	VersionID string
	Location  string
}

func NewS3Client(ctx context.Context, cfgCreds S3Config) (*S3Client, error) {
	loadOpts := []func(*config.LoadOptions) error{
		config.WithRegion(cfgCreds.Region),
	}
	if cfgCreds.AccessKey != "" {
		creds := aws.NewCredentialsCache(credentials.NewStaticCredentialsProvider(
			cfgCreds.AccessKey,
			cfgCreds.SecretKey,
			cfgCreds.AccessToken,
		))
		loadOpts = append(loadOpts, config.WithCredentialsProvider(creds))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	s3Options := func(o *s3.Options) {
		// retries belong to the upload client, which only retries transport failures
		o.RetryMaxAttempts = 1
		if cfgCreds.EndpointURL != "" {
			o.BaseEndpoint = aws.String(cfgCreds.EndpointURL)
			o.UsePathStyle = true // required by most S3-compatible stores
		}
	}

	return &S3Client{
		s3:            s3.NewFromConfig(cfg, s3Options),
		bucket:        cfgCreds.Bucket,
		endpointURL:   cfgCreds.EndpointURL,
		region:        cfgCreds.Region,
		publicBaseURL: cfgCreds.PublicBaseURL,
	}, nil
}

/* -------------------- UPLOAD -------------------- */

// PutObject uploads body under key. Sizes above threshold go through the
// multipart manager, the rest through a single PutObject.
func (c *S3Client) PutObject(
	ctx context.Context,
	key, contentType string,
	body io.Reader,
	size, threshold int64,
) (*S3Object, error) {
	if size > threshold {
		out, err := manager.NewUploader(c.s3).Upload(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(c.bucket),
			Key:         aws.String(key),
			Body:        body,
			ContentType: aws.String(contentType),
		})
		if err != nil {
			return nil, err
		}
		return &S3Object{
			Bucket:    c.bucket,
			Key:       key,
			ETag:      aws.ToString(out.ETag),
			VersionID: aws.ToString(out.VersionID),
			Location:  out.Location,
		}, nil
	}

	out, err := c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(c.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return nil, err
	}
	return &S3Object{
		Bucket:    c.bucket,
		Key:       key,
		ETag:      aws.ToString(out.ETag),
		VersionID: aws.ToString(out.VersionId),
	}, nil
}

/* -------------------- URL -------------------- */

// PublicURL: PublicBaseURL/key if configured, path-style on a custom
// endpoint, virtual-hosted AWS URL otherwise.
func (c *S3Client) PublicURL(key string) string {
	return objectURL(c.publicBaseURL, c.endpointURL, c.region, c.bucket, key)
}

func objectURL(publicBase, endpoint, region, bucket, key string) string {
	escaped := escapeKey(key)
	switch {
	case publicBase != "":
		return strings.TrimRight(publicBase, "/") + "/" + escaped
	case endpoint != "":
		return strings.TrimRight(endpoint, "/") + "/" + bucket + "/" + escaped
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucket, region, escaped)
	}
}

func escapeKey(key string) string {
	segs := strings.Split(strings.TrimPrefix(key, "/"), "/")
	for i, s := range segs {
		segs[i] = url.PathEscape(s)
	}
	return strings.Join(segs, "/")
}
