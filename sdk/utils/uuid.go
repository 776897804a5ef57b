package utils

import (
	"path"
	"strings"

	"github.com/google/uuid"
)

func UUIDv4NoDash() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}

// NewObjectKey → {folder}/{uuid}{ext of name}, lower-cased extension.
func NewObjectKey(folder, name string) string {
	ext := strings.ToLower(path.Ext(name))
	key := UUIDv4NoDash() + ext
	folder = strings.Trim(folder, "/")
	if folder == "" {
		return key
	}
	return folder + "/" + key
}
