// Package storage holds the object stores used for plant 3D model assets.
package storage

import (
	"context"
	"errors"
	"path"
	"strings"
	"time"
)

// ErrObjectNotFound is returned when a key has no stored object.
var ErrObjectNotFound = errors.New("object not found")

// ModelContentType is served for every stored model.
const ModelContentType = "model/gltf-binary"

// ObjectInfo describes one stored object.
type ObjectInfo struct {
	Key     string    `json:"key"`
	Size    int64     `json:"size"`
	Updated time.Time `json:"updated"`
}

// ModelStore reads and removes model objects by key.
type ModelStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) ([]ObjectInfo, error)
}

// CleanKey reduces key to a single path element so it cannot escape the store
// root. It returns "" for keys that are empty once cleaned.
func CleanKey(key string) string {
	key = strings.ReplaceAll(strings.TrimSpace(key), "\\", "/")
	key = path.Base(path.Clean("/" + key))
	if key == "/" || key == "." || key == ".." {
		return ""
	}
	return key
}
