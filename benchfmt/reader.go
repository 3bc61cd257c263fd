// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchfmt

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var (
	// ErrInputNotFound is returned when the results path does not
	// exist or is not a directory.
	ErrInputNotFound = errors.New("input not found")

	// ErrMalformedRecord is returned for rows that cannot be
	// parsed and for trial data that is inconsistent across files.
	ErrMalformedRecord = errors.New("malformed record")

	// ErrUnknownOperation is returned for an operation token that
	// is not one of put, containsKey, remove or containsKeyFailed.
	ErrUnknownOperation = errors.New("unknown operation")
)

// numFields is the number of columns of every data row.
const numFields = 5

// A Reader reads benchmark records from a single CSV file.
//
// Its API is modeled on bufio.Scanner. The Record returned by Result
// is owned by the Reader and overwritten by the next call to Scan; a
// caller should copy it if it needs to retain it.
//
// Unlike a scanner that skips bad lines, a Reader stops at the first
// malformed row: Scan returns false and Err reports a *SyntaxError.
type Reader struct {
	cr  *csv.Reader
	err error

	fileName string
	header   bool // the header row has been consumed

	result Record
}

// A SyntaxError represents a malformed row of a benchmark results
// file. It wraps ErrMalformedRecord or ErrUnknownOperation.
type SyntaxError struct {
	FileName string
	Line     int
	Msg      string
	Err      error
}

func (e *SyntaxError) Pos() (fileName string, line int) {
	return e.FileName, e.Line
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.FileName, e.Line, e.Msg)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// NewReader constructs a reader to parse benchmark records from r.
// fileName is used in records and error messages; it is purely
// diagnostic.
func NewReader(r io.Reader, fileName string) *Reader {
	reader := new(Reader)
	reader.Reset(r, fileName)
	return reader
}

// Reset resets the reader to begin reading from a new input. The first
// row of the new input is treated as a header.
func (r *Reader) Reset(ior io.Reader, fileName string) {
	if fileName == "" {
		fileName = "<unknown>"
	}
	r.cr = csv.NewReader(ior)
	r.cr.FieldsPerRecord = -1
	r.cr.TrimLeadingSpace = true
	r.cr.ReuseRecord = true
	r.err = nil
	r.fileName = fileName
	r.header = false
	r.result = Record{fileName: fileName}
}

// Scan advances the reader to the next record and reports whether a
// record was read. The caller should use the Result method to get the
// record. If Scan reaches EOF, hits a malformed row, or an I/O error
// occurs, it returns false, in which case the caller should use the
// Err method to check for errors.
func (r *Reader) Scan() bool {
	if r.err != nil {
		return false
	}
	for {
		fields, err := r.cr.Read()
		if err == io.EOF {
			return false
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				r.err = &SyntaxError{r.fileName, perr.Line, perr.Err.Error(), ErrMalformedRecord}
			} else {
				r.err = fmt.Errorf("%s: %w", r.fileName, err)
			}
			return false
		}
		line, _ := r.cr.FieldPos(0)
		if !r.header {
			// The header is skipped whatever it contains.
			r.header = true
			continue
		}
		if err := r.parseRow(fields, line); err != nil {
			r.err = err
			return false
		}
		return true
	}
}

// parseRow parses one data row into r.result.
func (r *Reader) parseRow(fields []string, line int) *SyntaxError {
	malformed := func(format string, args ...interface{}) *SyntaxError {
		return &SyntaxError{r.fileName, line, fmt.Sprintf(format, args...), ErrMalformedRecord}
	}
	if len(fields) != numFields {
		return malformed("want %d fields, got %d", numFields, len(fields))
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	impl, ok := ParseImplementation(fields[0])
	if !ok {
		return malformed("unknown implementation %q", fields[0])
	}
	rng, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil || rng < 0 {
		return malformed("invalid range %q", fields[1])
	}
	if fields[2] == "" {
		return malformed("empty load factor")
	}
	op, ok := ParseOperation(fields[3])
	if !ok {
		return &SyntaxError{r.fileName, line, fmt.Sprintf("unknown operation %q", fields[3]), ErrUnknownOperation}
	}
	dur, err := strconv.ParseInt(fields[4], 10, 64)
	if err != nil || dur < 0 {
		return malformed("invalid duration %q", fields[4])
	}

	r.result = Record{
		Impl:       impl,
		Range:      rng,
		LoadFactor: fields[2],
		Op:         op,
		Duration:   dur,
		fileName:   r.fileName,
		line:       line,
	}
	return nil
}

// Result returns the record that was just read by Scan.
func (r *Reader) Result() *Record {
	return &r.result
}

// Err returns the error that stopped Scan, if any. If Scan stopped
// because it read the input to completion, or if Scan has not yet
// returned false, Err returns nil.
func (r *Reader) Err() error {
	return r.err
}
