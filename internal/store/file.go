package store

import (
	"encoding/json"
	"os"
	"path/filepath"

	"go-blog-admin/internal/model"
)

// readJSONFile loads the whole store file. A missing file means an empty
// store; an unreadable or corrupt file is a storage fault. The two are
// deliberately distinct outcomes.
func readJSONFile[T any](path string, op string) ([]T, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, &model.StorageError{Op: op, Err: err}
	}

	if len(data) == 0 {
		return nil, nil
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, &model.StorageError{Op: op, Err: err}
	}

	return records, nil
}

// writeJSONFile persists the whole store file via temp file + rename so a
// crash mid-write never leaves a torn file behind.
func writeJSONFile[T any](path string, op string, records []T) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &model.StorageError{Op: op, Err: err}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return &model.StorageError{Op: op, Err: err}
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return &model.StorageError{Op: op, Err: err}
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return &model.StorageError{Op: op, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return &model.StorageError{Op: op, Err: err}
	}

	if err := os.Chmod(tmp.Name(), 0o600); err != nil {
		os.Remove(tmp.Name())
		return &model.StorageError{Op: op, Err: err}
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return &model.StorageError{Op: op, Err: err}
	}

	return nil
}
