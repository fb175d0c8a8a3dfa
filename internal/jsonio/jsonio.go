// Package jsonio reads and writes the JSON documents the commands exchange.
// All file access goes through an afero.Fs so commands can be tested against
// an in memory filesystem.
package jsonio

import (
	"bytes"
	"encoding/json"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// Exists reports whether a regular file exists at path.
func Exists(fs afero.Fs, path string) bool {
	ok, err := afero.Exists(fs, path)
	if err != nil || !ok {
		return false
	}

	isDir, err := afero.IsDir(fs, path)
	return err == nil && !isDir
}

// Read decodes the JSON file at path into out.
func Read(fs afero.Fs, path string, out interface{}) error {
	b, err := afero.ReadFile(fs, path)
	if err != nil {
		return errors.Wrapf(err, "unable to read %s", path)
	}

	return Decode(b, path, out)
}

// ReadDocument decodes the JSON file at path into generic maps and slices.
func ReadDocument(fs afero.Fs, path string) (interface{}, error) {
	var doc interface{}
	if err := Read(fs, path, &doc); err != nil {
		return nil, err
	}

	return doc, nil
}

// Decode decodes b into out. source names where b came from in errors.
func Decode(b []byte, source string, out interface{}) error {
	if err := json.Unmarshal(bytes.TrimPrefix(b, []byte("\xef\xbb\xbf")), out); err != nil {
		return errors.Wrapf(err, "unable to decode %s", source)
	}

	return nil
}

// Write encodes v as indented JSON into the file at path, creating parent
// directories as needed. The file is always closed, even when encoding fails.
func Write(fs afero.Fs, path string, v interface{}) (err error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "unable to create directory %s", dir)
		}
	}

	f, err := fs.Create(path)
	if err != nil {
		return errors.Wrapf(err, "unable to create %s", path)
	}

	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "unable to close %s", path)
		}
	}()

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return errors.Wrapf(err, "unable to write %s", path)
	}

	return nil
}
