// SPDX-FileCopyrightText: © 2025 LearnHub
//
// SPDX-License-Identifier: Apache-2.0

package media

import (
	"errors"
	"fmt"
	"path"
	"strings"
)

// DeliveryURL builds a CDN URL for an uploaded asset, optionally with
// transformations such as "w_300", "q_auto" or "f_auto".
func (s *MediaService) DeliveryURL(publicID string, category Category, transformations ...string) (string, error) {
	if strings.TrimSpace(publicID) == "" {
		return "", errors.New("public id is required")
	}
	switch category {
	case CategoryImage, CategoryVideo, CategoryRaw:
	default:
		return "", fmt.Errorf("delivery needs a concrete category, got %q", category)
	}
	return s.http.DeliveryURL(string(category), publicID, transformations), nil
}

// CourseFolder → courses/{courseID}/{kind}, e.g. courses/course-123/thumbnails.
func CourseFolder(courseID, kind string) string {
	return path.Join("courses", strings.Trim(courseID, "/ "), strings.Trim(kind, "/ "))
}
