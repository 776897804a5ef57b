// SPDX-FileCopyrightText: © 2025 LearnHub
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	BackendMedia = "media"
	BackendS3    = "s3"

	DefaultUploadHost         = "https://api.cloudinary.com/v1_1"
	DefaultDeliveryHost       = "https://res.cloudinary.com"
	DefaultMaxAttempts        = 3
	DefaultAttemptTimeout     = 300 * time.Second
	DefaultBackoffStep        = 1000 * time.Millisecond
	DefaultMultipartThreshold = 100 * 1024 * 1024
	DefaultBatchConcurrency   = 4
)

// Config is built once at startup and passed by value to the services;
// nothing in the SDK mutates it afterwards.
type Config struct {
	Backend string `validate:"oneof=media s3"`
	Media   MediaConfig
	S3      S3Config
	Upload  UploadConfig
}

type MediaConfig struct {
	UploadHost   string `validate:"required,url"`
	DeliveryHost string `validate:"required,url"`
	AccountID    string `validate:"required_if=Enabled true"`
	UploadPreset string `validate:"required_if=Enabled true"`

	// set by Validate from Config.Backend
	Enabled bool `validate:"-"`
}

type S3Config struct {
	AccessKey     string
	SecretKey     string
	AccessToken   string
	Region        string `validate:"required_if=Enabled true"`
	EndpointURL   string `validate:"omitempty,url"`
	Bucket        string `validate:"required_if=Enabled true"`
	PublicBaseURL string `validate:"omitempty,url"`

	Enabled bool `validate:"-"`
}

type UploadConfig struct {
	MaxAttempts        int           `validate:"min=1"`
	AttemptTimeout     time.Duration `validate:"gt=0"`
	BackoffStep        time.Duration `validate:"gte=0"`
	MultipartThreshold int64         `validate:"gt=0"`
	BatchConcurrency   int           `validate:"min=1"`
}

// WithDefaults returns a copy of c with every zero value replaced by its default.
func (c Config) WithDefaults() Config {
	if c.Backend == "" {
		c.Backend = BackendMedia
	}
	if c.Media.UploadHost == "" {
		c.Media.UploadHost = DefaultUploadHost
	}
	if c.Media.DeliveryHost == "" {
		c.Media.DeliveryHost = DefaultDeliveryHost
	}
	if c.Upload.MaxAttempts == 0 {
		c.Upload.MaxAttempts = DefaultMaxAttempts
	}
	if c.Upload.AttemptTimeout == 0 {
		c.Upload.AttemptTimeout = DefaultAttemptTimeout
	}
	if c.Upload.BackoffStep == 0 {
		c.Upload.BackoffStep = DefaultBackoffStep
	}
	if c.Upload.MultipartThreshold == 0 {
		c.Upload.MultipartThreshold = DefaultMultipartThreshold
	}
	if c.Upload.BatchConcurrency == 0 {
		c.Upload.BatchConcurrency = DefaultBatchConcurrency
	}
	return c
}

// Validate checks the struct tags; only the selected backend needs credentials.
func (c Config) Validate() error {
	c.Media.Enabled = c.Backend == BackendMedia
	c.S3.Enabled = c.Backend == BackendS3
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
