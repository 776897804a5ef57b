// SPDX-FileCopyrightText: © 2025 LearnHub
//
// SPDX-License-Identifier: Apache-2.0

package media

import (
	"errors"
	"strings"
	"testing"
)

func sizedFile(mediaType string, size int64) File {
	return File{Name: "f", MediaType: mediaType, Size: size, Content: strings.NewReader("")}
}

func assertValidationError(t *testing.T, err error, field string, contains string) {
	t.Helper()
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %T (%v)", err, err)
	}
	if ve.Field != field {
		t.Errorf("expected field %q, got %q", field, ve.Field)
	}
	if contains != "" && !strings.Contains(ve.Error(), contains) {
		t.Errorf("expected %q in error %q", contains, ve.Error())
	}
}

func TestValidate(t *testing.T) {
	const limit = 5_000_000

	t.Run("rejects file above limit", func(t *testing.T) {
		err := Validate(sizedFile("image/jpeg", limit+1), ValidationRules{MaxSizeBytes: limit})
		assertValidationError(t, err, "size", "5000000")
	})

	t.Run("accepts file at limit", func(t *testing.T) {
		if err := Validate(sizedFile("image/jpeg", limit), ValidationRules{MaxSizeBytes: limit}); err != nil {
			t.Errorf("expected valid, got %v", err)
		}
	})

	t.Run("accepts file below limit", func(t *testing.T) {
		if err := Validate(sizedFile("image/jpeg", 2048), ValidationRules{MaxSizeBytes: limit}); err != nil {
			t.Errorf("expected valid, got %v", err)
		}
	})

	t.Run("rejects type outside patterns", func(t *testing.T) {
		rules := ValidationRules{AllowedTypes: []string{"image/*", "application/pdf"}}
		err := Validate(sizedFile("video/mp4", 10), rules)
		assertValidationError(t, err, "media type", "video/mp4")
	})

	t.Run("accepts wildcard match", func(t *testing.T) {
		rules := ValidationRules{AllowedTypes: []string{"image/*"}}
		if err := Validate(sizedFile("image/jpeg", 10), rules); err != nil {
			t.Errorf("expected image/jpeg to match image/*, got %v", err)
		}
	})

	t.Run("accepts exact match ignoring parameters and case", func(t *testing.T) {
		rules := ValidationRules{AllowedTypes: []string{"Text/Plain"}}
		if err := Validate(sizedFile("text/plain; charset=utf-8", 10), rules); err != nil {
			t.Errorf("expected valid, got %v", err)
		}
	})

	t.Run("rejects empty file", func(t *testing.T) {
		assertValidationError(t, Validate(sizedFile("image/png", 0), ValidationRules{}), "size", "empty")
	})

	t.Run("no rules accepts anything non-empty", func(t *testing.T) {
		if err := Validate(sizedFile("", 1<<40), ValidationRules{}); err != nil {
			t.Errorf("expected valid, got %v", err)
		}
	})

	t.Run("missing media type never matches", func(t *testing.T) {
		err := Validate(sizedFile("", 10), ValidationRules{AllowedTypes: []string{"*/*"}})
		assertValidationError(t, err, "media type", "")
	})
}

func TestInferCategory(t *testing.T) {
	cases := map[string]Category{
		"image/png":                 CategoryImage,
		"image/jpeg":                CategoryImage,
		"IMAGE/WEBP":                CategoryImage,
		"video/mp4":                 CategoryVideo,
		"video/webm; codecs=vp9":    CategoryVideo,
		"application/pdf":           CategoryRaw,
		"application/msword":        CategoryRaw,
		"text/plain; charset=utf-8": CategoryRaw,
		"audio/mpeg":                CategoryRaw,
		"":                          CategoryRaw,
	}
	for mt, want := range cases {
		if got := InferCategory(mt); got != want {
			t.Errorf("InferCategory(%q) = %q, want %q", mt, got, want)
		}
	}
}

func TestParseCategory(t *testing.T) {
	for in, want := range map[string]Category{"": CategoryAuto, "IMAGE": CategoryImage, " raw ": CategoryRaw, "video": CategoryVideo, "auto": CategoryAuto} {
		got, err := ParseCategory(in)
		if err != nil || got != want {
			t.Errorf("ParseCategory(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseCategory("document"); err == nil {
		t.Error("expected error for unknown category")
	}
}

func TestCourseFolder(t *testing.T) {
	if got := CourseFolder("course-123", "thumbnails"); got != "courses/course-123/thumbnails" {
		t.Errorf("unexpected folder %q", got)
	}
	if got := CourseFolder("/course-9/", "/handouts/"); got != "courses/course-9/handouts" {
		t.Errorf("unexpected folder %q", got)
	}
}
