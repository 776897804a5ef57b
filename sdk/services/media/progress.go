// SPDX-FileCopyrightText: © 2025 LearnHub
//
// SPDX-License-Identifier: Apache-2.0

package media

import (
	"io"
	"sync"
	"time"
)

const progressInterval = 250 * time.Millisecond

// progressReader reports how much of the file content the transport has
// consumed during one attempt. Reported values never decrease, even when the
// S3 SDK seeks back to rewind the body.
type progressReader struct {
	src        *io.SectionReader
	total      int64
	pos        int64
	interval   time.Duration
	onProgress ProgressFunc

	mu       sync.Mutex
	high     int64
	lastEmit time.Time
	closed   bool
}

func newProgressReader(f File, onProgress ProgressFunc) *progressReader {
	return &progressReader{
		src:        io.NewSectionReader(f.Content, 0, f.Size),
		total:      f.Size,
		interval:   progressInterval,
		onProgress: onProgress,
	}
}

// start emits the 0% value that opens every attempt.
func (pr *progressReader) start() {
	pr.mu.Lock()
	defer pr.mu.Unlock()
	pr.lastEmit = time.Now()
	pr.emit(0)
}

func (pr *progressReader) Read(p []byte) (int, error) {
	n, err := pr.src.Read(p)
	pr.pos += int64(n)

	pr.mu.Lock()
	if pr.pos > pr.high {
		pr.high = pr.pos
		now := time.Now()
		if pr.high == pr.total || now.Sub(pr.lastEmit) >= pr.interval {
			pr.emit(pr.high)
			pr.lastEmit = now
		}
	}
	pr.mu.Unlock()
	return n, err
}

func (pr *progressReader) Seek(offset int64, whence int) (int64, error) {
	pos, err := pr.src.Seek(offset, whence)
	if err == nil {
		pr.pos = pos
	}
	return pos, err
}

// close stops reporting; a transport goroutine may still drain the body
// after the attempt has returned.
func (pr *progressReader) close() {
	pr.mu.Lock()
	pr.closed = true
	pr.mu.Unlock()
}

// emit must be called with mu held.
func (pr *progressReader) emit(loaded int64) {
	if pr.onProgress == nil || pr.closed {
		return
	}
	pct := 0
	if pr.total > 0 {
		pct = int(loaded * 100 / pr.total)
	}
	pr.onProgress(Progress{Loaded: loaded, Total: pr.total, Percent: pct})
}
