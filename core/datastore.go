package core

import (
	"encoding/json"
	"path/filepath"

	"github.com/samber/oops"
	"github.com/spf13/afero"
)

// Datastore persists one JSON document of type T. P is the partial form
// accepted by Save; the persisted document is itself decoded as a P and
// merged over the defaults, so a stored file missing fields is completed
// from defaults.
type Datastore[T any, P any] interface {
	Load() T
	Fetch() (T, error)
	Save(partial P) (T, error)
	Replace(data T) error
}

type FileBackedDatastore[T any, P any] struct {
	fs       afero.Fs
	filepath string
	defaults func() T
	merge    func(T, P) T
}

func NewFileBackedDatastore[T any, P any](fs afero.Fs, filepath string, defaults func() T, merge func(T, P) T) *FileBackedDatastore[T, P] {
	return &FileBackedDatastore[T, P]{
		fs:       fs,
		filepath: filepath,
		defaults: defaults,
		merge:    merge,
	}
}

func (d *FileBackedDatastore[T, P]) Path() string {
	return d.filepath
}

// Fetch reads the document. A missing file yields the defaults with no
// error; an unreadable or unparsable one yields the defaults and the error.
func (d *FileBackedDatastore[T, P]) Fetch() (T, error) {
	data, err := afero.ReadFile(d.fs, d.filepath)
	if err != nil {
		if ok, _ := afero.Exists(d.fs, d.filepath); !ok {
			return d.defaults(), nil
		}
		return d.defaults(), oops.In("datastore").With("path", d.filepath).Wrapf(err, "read document")
	}

	var persisted P
	if err := json.Unmarshal(data, &persisted); err != nil {
		return d.defaults(), oops.In("datastore").With("path", d.filepath).Wrapf(err, "parse document")
	}

	return d.merge(d.defaults(), persisted), nil
}

// Load is Fetch with errors logged and dropped.
func (d *FileBackedDatastore[T, P]) Load() T {
	data, err := d.Fetch()
	if err != nil {
		logger := GetLogger("datastore")
		logger.Warn().Err(err).Str("path", d.filepath).Msg("falling back to defaults")
	}
	return data
}

// Save overlays partial on the current document and overwrites the file.
func (d *FileBackedDatastore[T, P]) Save(partial P) (T, error) {
	next := d.merge(d.Load(), partial)
	if err := d.Replace(next); err != nil {
		return next, err
	}
	return next, nil
}

// Replace overwrites the document with data as given.
func (d *FileBackedDatastore[T, P]) Replace(data T) error {
	jsonStr, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return oops.In("datastore").With("path", d.filepath).Wrapf(err, "encode document")
	}

	if err := d.fs.MkdirAll(filepath.Dir(d.filepath), 0755); err != nil {
		return oops.In("datastore").With("path", d.filepath).Wrapf(err, "create config directory")
	}

	if err := afero.WriteFile(d.fs, d.filepath, jsonStr, 0644); err != nil {
		return oops.In("datastore").With("path", d.filepath).Wrapf(err, "write document")
	}

	return nil
}
