// SPDX-FileCopyrightText: © 2025 LearnHub
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
)

type MediaHTTP interface {
	UploadURL(category string) string
	DeliveryURL(category, publicID string, transformations []string) string
	Post(ctx context.Context, url, contentType string, body io.Reader, length int64) ([]byte, int, error)
}

type mediaHTTP struct {
	httpClient  *http.Client
	mediaConfig MediaConfig
}

func NewMediaHTTP(httpClient *http.Client, mediaConfig MediaConfig) MediaHTTP {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &mediaHTTP{httpClient: httpClient, mediaConfig: mediaConfig}
}

// UploadURL → {host}/{account}/{category}/upload
func (m *mediaHTTP) UploadURL(category string) string {
	return strings.TrimRight(m.mediaConfig.UploadHost, "/") + "/" + m.mediaConfig.AccountID + "/" + category + "/upload"
}

// DeliveryURL → {host}/{account}/{category}/upload[/{t1,t2}]/{publicID}
func (m *mediaHTTP) DeliveryURL(category, publicID string, transformations []string) string {
	base := strings.TrimRight(m.mediaConfig.DeliveryHost, "/") + "/" + m.mediaConfig.AccountID + "/" + category + "/upload"
	var parts []string
	for _, t := range transformations {
		if t = strings.TrimSpace(t); t != "" {
			parts = append(parts, t)
		}
	}
	if len(parts) > 0 {
		base += "/" + strings.Join(parts, ",")
	}
	return base + "/" + strings.TrimPrefix(publicID, "/")
}

// Post sends body as-is. The returned error is only ever the transport error
// of the HTTP client; non-2xx statuses come back through the status code so
// that callers can tell a dropped connection from a rejection.
func (m *mediaHTTP) Post(ctx context.Context, url, contentType string, body io.Reader, length int64) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	if length >= 0 {
		req.ContentLength = length
	}

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return b, resp.StatusCode, nil
}

// ResponseMessage extracts the server message from an error body:
// {"error":{"message":"..."}} or {"message":"..."}.
func ResponseMessage(body []byte) string {
	var m map[string]any
	if json.Unmarshal(body, &m) != nil {
		return ""
	}
	if e, ok := m["error"].(map[string]any); ok {
		if msg, ok := e["message"].(string); ok && msg != "" {
			return msg
		}
	}
	if e, ok := m["error"].(string); ok && e != "" {
		return e
	}
	if msg, ok := m["message"].(string); ok && msg != "" {
		return msg
	}
	return ""
}
