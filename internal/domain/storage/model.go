package storage

import (
	"fmt"
	"path"
	"strings"
	"time"
)

const AvatarBucket = "profilePictures"

// Object is a stored blob addressed by bucket and slash-separated path.
type Object struct {
	Bucket      string
	Path        string
	ContentType string
	Data        []byte
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CleanPath rejects absolute and parent-relative object paths.
func CleanPath(p string) (string, error) {
	p = strings.TrimSpace(p)
	if p == "" {
		return "", fmt.Errorf("object path is required")
	}
	cleaned := path.Clean("/" + p)[1:]
	if cleaned == "" || cleaned != strings.TrimPrefix(p, "/") || strings.HasPrefix(p, "/") {
		return "", fmt.Errorf("object path %q is invalid", p)
	}
	return cleaned, nil
}

// PublicPath is the URL path an object is served from.
func PublicPath(bucket, objectPath string) string {
	return "/storage/v1/object/public/" + bucket + "/" + objectPath
}
