// SPDX-FileCopyrightText: © 2025 LearnHub
//
// SPDX-License-Identifier: Apache-2.0

package media

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gabriel-vasile/mimetype"
)

type Category string

const (
	CategoryImage Category = "image"
	CategoryVideo Category = "video"
	CategoryRaw   Category = "raw"
	CategoryAuto  Category = "auto"
)

const DefaultFolder = "root"

// File is the content of one upload. Content is read from offset 0 on every
// attempt and must not change while an upload is running.
type File struct {
	Name      string
	MediaType string
	Size      int64
	Content   io.ReaderAt
}

// NewBytesFile wraps in-memory content. An empty mediaType is sniffed.
func NewBytesFile(name, mediaType string, data []byte) File {
	if mediaType == "" {
		mediaType = mimetype.Detect(data).String()
	}
	return File{
		Name:      name,
		MediaType: mediaType,
		Size:      int64(len(data)),
		Content:   bytes.NewReader(data),
	}
}

// OpenFile opens a local file for upload; the caller closes the returned file.
func OpenFile(path string) (File, *os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return File{}, nil, fmt.Errorf("failed to open local file: %w", err)
	}
	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return File{}, nil, fmt.Errorf("stat error: %w", err)
	}
	if st.IsDir() {
		_ = f.Close()
		return File{}, nil, fmt.Errorf("%s is a directory", path)
	}

	mt, err := mimetype.DetectReader(io.NewSectionReader(f, 0, st.Size()))
	if err != nil {
		_ = f.Close()
		return File{}, nil, fmt.Errorf("mime detection failed: %w", err)
	}

	return File{
		Name:      filepath.Base(path),
		MediaType: mt.String(),
		Size:      st.Size(),
		Content:   f,
	}, f, nil
}

type Progress struct {
	Loaded  int64 `json:"loaded"`
	Total   int64 `json:"total"`
	Percent int   `json:"percent"`
}

// ProgressFunc is called from the goroutine running the attempt.
//
// Progress counts bytes read from File.Content, not bytes acknowledged by
// the server. On the s3 backend over a plain-HTTP endpoint the SDK reads the
// whole body once to hash the payload and then rewinds, so 100% can be
// reported before the transfer starts; values never decrease across the
// rewind.
type ProgressFunc func(Progress)

type UploadOptions struct {
	Folder     string   // default "root"
	Category   Category // default auto
	OnProgress ProgressFunc
}

type Result struct {
	SecureURL        string    `json:"secure_url"                  yaml:"secure_url"`
	URL              string    `json:"url,omitempty"               yaml:"url,omitempty"`
	PublicID         string    `json:"public_id"                   yaml:"public_id"`
	ResourceType     Category  `json:"resource_type"               yaml:"resource_type"`
	Format           string    `json:"format"                      yaml:"format"`
	Bytes            int64     `json:"bytes"                       yaml:"bytes"`
	CreatedAt        time.Time `json:"created_at"                  yaml:"created_at"`
	Version          int64     `json:"version,omitempty"           yaml:"version,omitempty"`
	Width            int       `json:"width,omitempty"             yaml:"width,omitempty"`
	Height           int       `json:"height,omitempty"            yaml:"height,omitempty"`
	OriginalFilename string    `json:"original_filename,omitempty" yaml:"original_filename,omitempty"`
	Backend          string    `json:"backend,omitempty"           yaml:"backend,omitempty"`
}

// -------- Batch --------

type BatchItem struct {
	File    File
	Options UploadOptions
}

type BatchOutcome struct {
	Name   string  `json:"name"             yaml:"name"`
	Result *Result `json:"result,omitempty" yaml:"result,omitempty"`
	Err    error   `json:"-"                yaml:"-"`
}
