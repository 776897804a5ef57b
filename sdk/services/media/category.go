// SPDX-FileCopyrightText: © 2025 LearnHub
//
// SPDX-License-Identifier: Apache-2.0

package media

import (
	"fmt"
	"strings"
)

// InferCategory: image/* → image, video/* → video, anything else → raw.
func InferCategory(mediaType string) Category {
	mt := baseMediaType(mediaType)
	switch {
	case strings.HasPrefix(mt, "image/"):
		return CategoryImage
	case strings.HasPrefix(mt, "video/"):
		return CategoryVideo
	default:
		return CategoryRaw
	}
}

func ParseCategory(s string) (Category, error) {
	switch c := Category(strings.ToLower(strings.TrimSpace(s))); c {
	case "":
		return CategoryAuto, nil
	case CategoryImage, CategoryVideo, CategoryRaw, CategoryAuto:
		return c, nil
	default:
		return "", fmt.Errorf("unknown resource category %q (image, video, raw, auto)", s)
	}
}

// resolveCategory turns auto into a concrete category.
func resolveCategory(c Category, mediaType string) Category {
	if c == "" || c == CategoryAuto {
		return InferCategory(mediaType)
	}
	return c
}

// baseMediaType drops parameters: "text/plain; charset=utf-8" → "text/plain".
func baseMediaType(mediaType string) string {
	mt, _, _ := strings.Cut(mediaType, ";")
	return strings.ToLower(strings.TrimSpace(mt))
}
