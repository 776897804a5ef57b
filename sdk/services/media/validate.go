// SPDX-FileCopyrightText: © 2025 LearnHub
//
// SPDX-License-Identifier: Apache-2.0

package media

import (
	"fmt"
	"path"
	"strings"

	"github.com/learnhub/learnhub-media-sdk/sdk/utils"
)

// ValidationRules: a zero MaxSizeBytes or empty AllowedTypes disables that check.
type ValidationRules struct {
	MaxSizeBytes int64
	AllowedTypes []string // glob patterns, e.g. "image/*", "application/pdf"
}

// Validate checks f against rules before upload. A nil error means valid.
func Validate(f File, rules ValidationRules) error {
	if f.Size <= 0 {
		return &ValidationError{Field: "size", Cause: "file is empty"}
	}
	if rules.MaxSizeBytes > 0 && f.Size > rules.MaxSizeBytes {
		return &ValidationError{
			Field: "size",
			Cause: fmt.Sprintf("file size %d bytes exceeds the limit of %d bytes (%s)",
				f.Size, rules.MaxSizeBytes, utils.HumanBytes(rules.MaxSizeBytes)),
		}
	}
	if len(rules.AllowedTypes) > 0 && !MatchesMediaType(f.MediaType, rules.AllowedTypes) {
		return &ValidationError{
			Field: "media type",
			Cause: fmt.Sprintf("%q is not allowed (allowed: %s)", f.MediaType, strings.Join(rules.AllowedTypes, ", ")),
		}
	}
	return nil
}

// MatchesMediaType reports whether mediaType matches any of the glob patterns.
func MatchesMediaType(mediaType string, patterns []string) bool {
	mt := baseMediaType(mediaType)
	if mt == "" {
		return false
	}
	for _, p := range patterns {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		if ok, err := path.Match(p, mt); err == nil && ok {
			return true
		}
	}
	return false
}
