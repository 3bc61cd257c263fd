// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchfmt

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// A Files reads benchmark records from a sequence of trial files.
//
// Each file is one trial run. Index reports the position in Paths of
// the file the current record was read from, which is the trial index
// used by aggregation.
type Files struct {
	// Paths is the list of file names to read in.
	Paths []string

	// next is the index in Paths of the next file to open.
	next int

	reader Reader
	file   *os.File
	err    error
}

// Scan advances the reader to the next record in the sequence of
// files and reports whether a record was read. The caller should use
// the Result method to get the record. If Scan reaches the end of the
// file sequence, or if an error occurs, it returns false. In this
// case, the caller should use the Err method to check for errors.
func (f *Files) Scan() bool {
	if f.err != nil {
		return false
	}

	for {
		if f.file == nil {
			// Open the next file.
			if f.next >= len(f.Paths) {
				// We're out of inputs.
				return false
			}
			file, err := os.Open(f.Paths[f.next])
			if err != nil {
				f.err = err
				return false
			}
			f.file = file
			f.next++
			f.reader.Reset(f.file, f.Paths[f.next-1])
		}

		// Try to get the next record.
		if f.reader.Scan() {
			return true
		}
		err := f.reader.Err()
		if err != nil {
			f.err = err
			f.file.Close()
			f.file = nil
			break
		}
		// Just an EOF. Close this file and open the next.
		f.file.Close()
		f.file = nil
	}
	return false
}

// Index returns the index in Paths of the file the last record was
// read from.
func (f *Files) Index() int {
	if f.file == nil {
		return f.next
	}
	return f.next - 1
}

// Result returns the record that was just read by Scan.
// See Reader.Result.
func (f *Files) Result() *Record {
	return f.reader.Result()
}

// Err returns the error that stopped Scan, if any.
// If Scan stopped because it read each file to completion,
// or if Scan has not yet returned false, Err returns nil.
func (f *Files) Err() error {
	return f.err
}

// ReadFile parses every record of the named file.
func ReadFile(path string) ([]Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var recs []Record
	r := NewReader(file, path)
	for r.Scan() {
		recs = append(recs, *r.Result())
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	return recs, nil
}

// Dir returns the paths of the regular files in the directory dir, in
// lexical order. Symbolic links to regular files are included. It reports ErrInputNotFound if dir does not exist or
// is not a directory. No file is opened.
func Dir(dir string) ([]string, error) {
	fi, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", dir, ErrInputNotFound)
		}
		return nil, err
	}
	if !fi.IsDir() {
		return nil, fmt.Errorf("%s: not a directory: %w", dir, ErrInputNotFound)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, e := range entries {
		path := filepath.Join(dir, e.Name())
		if e.Type()&fs.ModeSymlink != 0 {
			// Follow links; dangling ones are not files.
			fi, err := os.Stat(path)
			if errors.Is(err, fs.ErrNotExist) {
				continue
			} else if err != nil {
				return nil, err
			}
			if !fi.Mode().IsRegular() {
				continue
			}
		} else if !e.Type().IsRegular() {
			continue
		}
		paths = append(paths, path)
	}
	return paths, nil
}
