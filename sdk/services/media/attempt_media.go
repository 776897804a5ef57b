// SPDX-FileCopyrightText: © 2025 LearnHub
//
// SPDX-License-Identifier: Apache-2.0

package media

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"

	"github.com/learnhub/learnhub-media-sdk/sdk/config"
)

type mediaBackend struct {
	http   config.MediaHTTP
	preset string
}

func (b *mediaBackend) name() string { return config.BackendMedia }

// attempt POSTs multipart/form-data {upload_preset, folder, file} to
// {host}/{account}/{category}/upload.
func (b *mediaBackend) attempt(ctx context.Context, f File, folder string, category Category, pr *progressReader) (*Result, error) {
	head, tail, contentType, err := multipartFrame(b.preset, folder, f)
	if err != nil {
		return nil, fmt.Errorf("failed to build multipart body: %w", err)
	}

	body := io.MultiReader(bytes.NewReader(head), pr, bytes.NewReader(tail))
	length := int64(len(head)) + f.Size + int64(len(tail))

	respBody, status, err := b.http.Post(ctx, b.http.UploadURL(string(category)), contentType, body, length)
	if err != nil {
		return nil, err
	}
	if status < 200 || status > 299 {
		return nil, rejected(status, config.ResponseMessage(respBody), nil)
	}

	var res Result
	if err := json.Unmarshal(respBody, &res); err != nil {
		return nil, rejected(status, "invalid response body", err)
	}
	return &res, nil
}

// multipartFrame renders everything around the file bytes so the body can be
// streamed with a known Content-Length.
func multipartFrame(preset, folder string, f File) (head, tail []byte, contentType string, err error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	if err := mw.WriteField("upload_preset", preset); err != nil {
		return nil, nil, "", err
	}
	if err := mw.WriteField("folder", folder); err != nil {
		return nil, nil, "", err
	}

	name := f.Name
	if name == "" {
		name = "blob"
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, name))
	if f.MediaType != "" {
		h.Set("Content-Type", f.MediaType)
	} else {
		h.Set("Content-Type", "application/octet-stream")
	}
	if _, err := mw.CreatePart(h); err != nil {
		return nil, nil, "", err
	}
	head = bytes.Clone(buf.Bytes())

	buf.Reset()
	if err := mw.Close(); err != nil {
		return nil, nil, "", err
	}
	tail = bytes.Clone(buf.Bytes())

	return head, tail, mw.FormDataContentType(), nil
}
