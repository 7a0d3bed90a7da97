// Package shell is the file-system collaborator boundary of the editor
// core.
//
// The core itself performs no I/O; everything on disk goes through this
// package, which reports success, failure, and user cancellation as three
// distinct outcomes (a cancelled file choice is not an error condition to
// report to the user). The file-picking step is abstracted as a [Picker]
// so a desktop shell can plug in a native dialog while the CLI passes a
// fixed path.
//
// Saves are atomic: content is written to a temporary file next to the
// target and renamed into place, so a failed save never corrupts the
// previous file and leaves the in-memory document's dirty state for the
// caller to keep.
package shell

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	qerrors "github.com/questforge/questforge/pkg/errors"
	"github.com/questforge/questforge/pkg/quest"
	"github.com/questforge/questforge/pkg/transcode"
)

// ErrCanceled is returned by picker-driven operations when the user
// dismissed the file choice. Callers should treat it as "do nothing".
var ErrCanceled = errors.New("file choice canceled")

// Picker resolves the file path for an operation. A native shell shows a
// dialog; the CLI returns a flag value. Returning ErrCanceled aborts the
// operation without failure.
type Picker func() (string, error)

// FixedPath returns a Picker that always resolves to path.
func FixedPath(path string) Picker {
	return func() (string, error) { return path, nil }
}

// ReadResult is the successful outcome of a read operation: the content
// and the path it was resolved from (so the caller can track the current
// file and recents).
type ReadResult struct {
	Data []byte
	Path string
}

// ReadChosenFile reads the file the picker resolves.
func ReadChosenFile(pick Picker) (*ReadResult, error) {
	path, err := pick()
	if err != nil {
		return nil, err
	}
	return ReadKnownPath(path)
}

// ReadKnownPath reads a file at an already-known location, used when
// reopening recent files. A missing file is reported with a structured
// FILE_NOT_FOUND error so callers can prune stale recents.
func ReadKnownPath(path string) (*ReadResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, qerrors.New(qerrors.ErrCodeFileNotFound, "file not found: %s", path)
		}
		return nil, qerrors.Wrap(qerrors.ErrCodeRead, err, "read %s", path)
	}
	return &ReadResult{Data: data, Path: path}, nil
}

// WriteChosenFile writes data to the file the picker resolves, returning
// the resolved path. The write is atomic.
func WriteChosenFile(pick Picker, data []byte) (string, error) {
	path, err := pick()
	if err != nil {
		return "", err
	}
	if err := writeAtomic(path, data); err != nil {
		return "", err
	}
	return path, nil
}

// writeAtomic writes data to a temporary sibling file and renames it over
// the target, so a mid-write failure leaves the previous content intact.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return qerrors.Wrap(qerrors.ErrCodeWrite, err, "create temp file in %s", dir)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return qerrors.Wrap(qerrors.ErrCodeWrite, err, "write %s", path)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return qerrors.Wrap(qerrors.ErrCodeWrite, err, "write %s", path)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return qerrors.Wrap(qerrors.ErrCodeWrite, err, "replace %s", path)
	}
	return nil
}

// SaveProject persists the project verbatim as pretty-printed JSON with
// RFC 3339 timestamps.
func SaveProject(path string, p *quest.Project) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return qerrors.Wrap(qerrors.ErrCodeInternal, err, "encode project")
	}
	return writeAtomic(path, data)
}

// LoadProject reads and parses a project file, accepting both the
// persisted shape and the exported wrapper.
func LoadProject(path string) (*quest.Project, error) {
	res, err := ReadKnownPath(path)
	if err != nil {
		return nil, err
	}
	p, err := transcode.ParseProject(res.Data)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return p, nil
}
