// Package storage keeps uploaded media bytes. Names are bare file names;
// callers never pass directories.
package storage

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
)

// PathPrefix is prepended to stored names to form the public file path
// recorded on media rows ("uploads/<name>").
const PathPrefix = "uploads/"

var ErrInvalidName = errors.New("invalid storage name")

type Storage interface {
	// Save writes r under name. A failed write leaves nothing behind.
	Save(ctx context.Context, name string, r io.Reader, contentType string) error
	// Delete removes name. A missing object is not an error.
	Delete(ctx context.Context, name string) error
}

// NameFromPath turns a recorded file path back into a storage name.
func NameFromPath(path string) string {
	return strings.TrimPrefix(path, PathPrefix)
}

func validName(name string) error {
	if name == "" || name == "." || name == ".." || filepath.Base(name) != name || strings.ContainsAny(name, `/\`) {
		return ErrInvalidName
	}
	return nil
}
