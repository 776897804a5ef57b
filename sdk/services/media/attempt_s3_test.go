// SPDX-FileCopyrightText: © 2025 LearnHub
//
// SPDX-License-Identifier: Apache-2.0

package media

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/learnhub/learnhub-media-sdk/sdk/config"
)

// fakeBucket is a path-style S3-compatible endpoint for bucket "bkt".
type fakeBucket struct {
	srv      *httptest.Server
	attempts atomic.Int32

	mu   sync.Mutex
	puts []string
}

func newFakeBucket(t *testing.T, handle func(attempt int, w http.ResponseWriter, r *http.Request)) *fakeBucket {
	t.Helper()
	b := &fakeBucket{}
	b.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := int(b.attempts.Add(1))
		if r.Method == http.MethodPut {
			b.mu.Lock()
			b.puts = append(b.puts, r.URL.Path)
			b.mu.Unlock()
		}
		handle(n, w, r)
	}))
	t.Cleanup(b.srv.Close)
	return b
}

func (b *fakeBucket) lastPut() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.puts) == 0 {
		return ""
	}
	return b.puts[len(b.puts)-1]
}

func newS3TestService(t *testing.T, b *fakeBucket) (*MediaService, *sleepRecorder) {
	t.Helper()
	// keep the AWS loader away from the developer's own profile
	dir := t.TempDir()
	t.Setenv("AWS_CONFIG_FILE", filepath.Join(dir, "config"))
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", filepath.Join(dir, "credentials"))
	t.Setenv("AWS_PROFILE", "")
	t.Setenv("AWS_ENDPOINT_URL", "")
	t.Setenv("AWS_ENDPOINT_URL_S3", "")

	conf := config.Config{
		Backend: config.BackendS3,
		S3: config.S3Config{
			AccessKey:   "test",
			SecretKey:   "test",
			Region:      "us-east-1",
			EndpointURL: b.srv.URL,
			Bucket:      "bkt",
		},
	}
	svc, err := NewMediaService(context.Background(), conf)
	if err != nil {
		t.Fatalf("failed to init s3 service: %v", err)
	}
	rec := &sleepRecorder{}
	svc.sleep = rec.sleep
	return svc, rec
}

func storeObject(w http.ResponseWriter, r *http.Request) {
	_, _ = io.Copy(io.Discard, r.Body)
	w.Header().Set("ETag", `"d41d8cd98f00b204e9800998ecf8427e"`)
	w.WriteHeader(http.StatusOK)
}

func TestS3UploadStoresUnderCategoryFolder(t *testing.T) {
	bucket := newFakeBucket(t, func(_ int, w http.ResponseWriter, r *http.Request) {
		storeObject(w, r)
	})
	svc, rec := newS3TestService(t, bucket)

	var mu sync.Mutex
	var seen []Progress
	opts := UploadOptions{Folder: "courses/x", OnProgress: func(p Progress) {
		mu.Lock()
		seen = append(seen, p)
		mu.Unlock()
	}}

	before := time.Now().UTC()
	res, err := svc.Upload(context.Background(), NewBytesFile("Cover.JPG", "image/jpeg", jpegBytes(64)), opts)
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}

	keyRe := regexp.MustCompile(`^/bkt/(courses/x/image/[0-9a-f]{32}\.jpg)$`)
	m := keyRe.FindStringSubmatch(bucket.lastPut())
	if m == nil {
		t.Fatalf("unexpected object path %q", bucket.lastPut())
	}
	key := m[1]

	if res.SecureURL != bucket.srv.URL+"/bkt/"+key {
		t.Errorf("unexpected secure url %s", res.SecureURL)
	}
	if res.PublicID != strings.TrimSuffix(key, ".jpg") || res.Format != "jpg" {
		t.Errorf("unexpected public id %q format %q", res.PublicID, res.Format)
	}
	if res.Bytes != 64 || res.ResourceType != CategoryImage || res.Backend != config.BackendS3 {
		t.Errorf("unexpected result %+v", res)
	}
	if res.OriginalFilename != "Cover" || res.CreatedAt.Before(before.Add(-time.Second)) {
		t.Errorf("unexpected filename %q created_at %s", res.OriginalFilename, res.CreatedAt)
	}
	assertWaits(t, rec.recorded())

	mu.Lock()
	defer mu.Unlock()
	if len(seen) == 0 {
		t.Fatal("expected progress values")
	}
	if seen[0].Loaded != 0 {
		t.Errorf("first value should be 0, got %+v", seen[0])
	}
	for i := 1; i < len(seen); i++ {
		if seen[i].Loaded < seen[i-1].Loaded {
			t.Errorf("progress went backwards across a rewind: %+v then %+v", seen[i-1], seen[i])
		}
	}
	if last := seen[len(seen)-1]; last != (Progress{Loaded: 64, Total: 64, Percent: 100}) {
		t.Errorf("expected final 100%%, got %+v", last)
	}
}

func TestS3UploadRejection(t *testing.T) {
	bucket := newFakeBucket(t, func(_ int, w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		w.Header().Set("Content-Type", "application/xml")
		w.WriteHeader(http.StatusForbidden)
		_, _ = io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?>`+
			`<Error><Code>AccessDenied</Code><Message>Access Denied</Message><RequestId>req-1</RequestId></Error>`)
	})
	svc, rec := newS3TestService(t, bucket)

	_, err := svc.Upload(context.Background(), NewBytesFile("notes.pdf", "application/pdf", []byte("%PDF-1.4 handout")), UploadOptions{})
	ue := assertUploadError(t, err, KindServerRejected, 1)
	if ue.StatusCode != http.StatusForbidden || ue.Message != "Access Denied" {
		t.Errorf("expected 403 Access Denied, got %d %q", ue.StatusCode, ue.Message)
	}
	if got := bucket.attempts.Load(); got != 1 {
		t.Errorf("expected 1 request, got %d", got)
	}
	assertWaits(t, rec.recorded())
}

func TestS3UploadRetriesDroppedConnections(t *testing.T) {
	bucket := newFakeBucket(t, func(_ int, w http.ResponseWriter, r *http.Request) {
		dropConnection(t, w, r)
	})
	svc, rec := newS3TestService(t, bucket)

	_, err := svc.Upload(context.Background(), NewBytesFile("clip.mp4", "video/mp4", make([]byte, 128)), UploadOptions{})
	assertUploadError(t, err, KindNetwork, 3)
	if got := bucket.attempts.Load(); got != 3 {
		t.Errorf("expected 3 requests, got %d", got)
	}
	assertWaits(t, rec.recorded(), 1000*time.Millisecond, 2000*time.Millisecond)
}
