// SPDX-FileCopyrightText: © 2025 LearnHub
//
// SPDX-License-Identifier: Apache-2.0

package utils

import (
	"bytes"
	"regexp"
	"strings"
	"testing"
)

func TestNewObjectKey(t *testing.T) {
	re := regexp.MustCompile(`^courses/c1/image/[0-9a-f]{32}\.jpg$`)
	k1 := NewObjectKey("/courses/c1/image/", "Cover.JPG")
	k2 := NewObjectKey("courses/c1/image", "Cover.JPG")
	if !re.MatchString(k1) || !re.MatchString(k2) {
		t.Errorf("unexpected keys %q %q", k1, k2)
	}
	if k1 == k2 {
		t.Error("keys must be unique")
	}
	if k := NewObjectKey("", "README"); !regexp.MustCompile(`^[0-9a-f]{32}$`).MatchString(k) {
		t.Errorf("unexpected key %q", k)
	}
}

func TestFormatOutput(t *testing.T) {
	v := map[string]any{"public_id": "courses/c1/cover", "bytes": 2048}

	js, err := FormatOutput(v, "json")
	if err != nil {
		t.Fatalf("json: %v", err)
	}
	if !strings.Contains(js, "\n  \"bytes\": 2048") {
		t.Errorf("expected indented json, got %s", js)
	}

	y, err := FormatOutput(v, "YML")
	if err != nil {
		t.Fatalf("yaml: %v", err)
	}
	if y != "bytes: 2048\npublic_id: courses/c1/cover\n" {
		t.Errorf("unexpected yaml %q", y)
	}
}

func TestHumanBytes(t *testing.T) {
	cases := map[int64]string{
		512:       "512 B",
		2048:      "2.00 KB",
		5_000_000: "4.77 MB",
		3 << 30:   "3.00 GB",
	}
	for n, want := range cases {
		if got := HumanBytes(n); got != want {
			t.Errorf("HumanBytes(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestProgressLineAggregates(t *testing.T) {
	var buf bytes.Buffer
	pl := NewProgressLine(&buf)
	pl.Update("a.jpg", 0, 1024)
	pl.Update("b.pdf", 1024, 1024)
	pl.Update("a.jpg", 1024, 1024)
	pl.Done()

	out := buf.String()
	if !strings.Contains(out, "50.00%") {
		t.Errorf("expected partial aggregate in %q", out)
	}
	if !strings.HasSuffix(out, "100.00% (2.00 KB / 2.00 KB)   \n") {
		t.Errorf("expected final line, got %q", out)
	}
}
