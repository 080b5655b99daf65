// Package storage stores uploaded import files on the local filesystem.
//
// Callers treat the returned paths as opaque handles.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Local stores files in a single directory, one file per upload.
type Local struct {
	dir string
}

// NewLocal creates the upload directory if needed.
func NewLocal(dir string) (*Local, error) {
	err := os.MkdirAll(dir, os.ModePerm)
	if err != nil {
		return nil, fmt.Errorf("could not create upload directory: %w", err)
	}

	return &Local{dir: dir}, nil
}

// Save writes the upload and returns its opaque path.
//
// The stored name is a fresh UUID so that uploads can never collide or
// overwrite each other, whatever the user named the file.
func (l *Local) Save(src io.Reader) (string, error) {
	path := filepath.Join(l.dir, uuid.NewString())

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}

	_, err = io.Copy(f, src)
	if err != nil {
		f.Close()
		_ = os.Remove(path)
		return "", err
	}

	err = f.Close()
	if err != nil {
		return "", err
	}

	return path, nil
}

// Open opens a previously saved file.
func (l *Local) Open(path string) (io.ReadCloser, error) {
	return os.Open(path)
}

// Remove deletes a previously saved file. Removing a file that is
// already gone is not an error.
func (l *Local) Remove(path string) error {
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	return nil
}
