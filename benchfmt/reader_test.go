// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchfmt

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const header = "HashMap,\"Number of elements\",Load factor,Operation,Time\n"

func parseAll(t *testing.T, data string) ([]Record, error) {
	t.Helper()
	r := NewReader(strings.NewReader(data), "test")
	var out []Record
	for r.Scan() {
		rec := *r.Result()
		// Wipe position information for comparisons.
		rec.fileName = ""
		rec.line = 0
		out = append(out, rec)
	}
	return out, r.Err()
}

func TestReader(t *testing.T) {
	type testCase struct {
		name, input string
		want        []Record
	}
	for _, test := range []testCase{
		{
			"header only",
			header,
			nil,
		},
		{
			"empty",
			"",
			nil,
		},
		{
			"basic",
			header + `LL,1000,0.75,put,48211
DH,1000,0.75,containsKey,1200
RH,50000,0.99,remove,7
LL,50,0.80,containsKeyFailed,0
`,
			[]Record{
				{Impl: LL, Range: 1000, LoadFactor: "0.75", Op: Put, Duration: 48211},
				{Impl: DH, Range: 1000, LoadFactor: "0.75", Op: Lookup, Duration: 1200},
				{Impl: RH, Range: 50000, LoadFactor: "0.99", Op: Remove, Duration: 7},
				{Impl: LL, Range: 50, LoadFactor: "0.80", Op: FailedLookup, Duration: 0},
			},
		},
		{
			"header skipped regardless of content",
			"LL,1,0.75,put,1\nDH,2,0.75,put,2\n",
			[]Record{
				{Impl: DH, Range: 2, LoadFactor: "0.75", Op: Put, Duration: 2},
			},
		},
		{
			"spaces and crlf",
			header + "RH, 100 ,0.90, put ,5\r\n\r\n",
			[]Record{
				{Impl: RH, Range: 100, LoadFactor: "0.90", Op: Put, Duration: 5},
			},
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			got, err := parseAll(t, test.input)
			require.NoError(t, err)
			require.Equal(t, test.want, got)
		})
	}
}

func TestReaderErrors(t *testing.T) {
	type testCase struct {
		name, input string
		sentinel    error
		msg         string
	}
	for _, test := range []testCase{
		{
			"bad duration",
			header + "LL,1000,0.75,put,12\nLL,2000,0.75,put,fast\n",
			ErrMalformedRecord,
			`test:3: invalid duration "fast"`,
		},
		{
			"negative duration",
			header + "LL,1000,0.75,put,-1\n",
			ErrMalformedRecord,
			`test:2: invalid duration "-1"`,
		},
		{
			"bad range",
			header + "LL,1e3,0.75,put,1\n",
			ErrMalformedRecord,
			`test:2: invalid range "1e3"`,
		},
		{
			"unknown implementation",
			header + "QP,1000,0.75,put,1\n",
			ErrMalformedRecord,
			`test:2: unknown implementation "QP"`,
		},
		{
			"unknown operation",
			header + "LL,1000,0.75,get,1\n",
			ErrUnknownOperation,
			`test:2: unknown operation "get"`,
		},
		{
			"short row",
			header + "LL,1000,0.75,put\n",
			ErrMalformedRecord,
			"test:2: want 5 fields, got 4",
		},
		{
			"empty load factor",
			header + "LL,1000,,put,1\n",
			ErrMalformedRecord,
			"test:2: empty load factor",
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			_, err := parseAll(t, test.input)
			require.Error(t, err)
			require.True(t, errors.Is(err, test.sentinel), "got %v, want %v", err, test.sentinel)
			require.EqualError(t, err, test.msg)

			var serr *SyntaxError
			require.True(t, errors.As(err, &serr))
			require.Equal(t, "test", serr.FileName)
		})
	}
}

func TestReaderStopsAtError(t *testing.T) {
	r := NewReader(strings.NewReader(header+"LL,1,0.75,put,1\nLL,2,0.75,put,x\nLL,3,0.75,put,3\n"), "f.csv")
	n := 0
	for r.Scan() {
		n++
	}
	if n != 1 {
		t.Errorf("got %d records before the error, want 1", n)
	}
	if r.Scan() {
		t.Errorf("Scan after error returned true")
	}
	fileName, line := r.Err().(*SyntaxError).Pos()
	if fileName != "f.csv" || line != 3 {
		t.Errorf("error at %s:%d, want f.csv:3", fileName, line)
	}
}

func TestRecordPos(t *testing.T) {
	r := NewReader(strings.NewReader(header+"LL,1,0.75,put,1\n\nDH,1,0.75,put,1\n"), "pos.csv")
	var lines []int
	for r.Scan() {
		fileName, line := r.Result().Pos()
		if fileName != "pos.csv" {
			t.Errorf("got file %q, want pos.csv", fileName)
		}
		lines = append(lines, line)
	}
	require.NoError(t, r.Err())
	require.Equal(t, []int{2, 4}, lines)
}

func TestEnums(t *testing.T) {
	for i, impl := range Implementations {
		if int(impl) != i {
			t.Errorf("Implementations[%d] = %v", i, impl)
		}
		got, ok := ParseImplementation(impl.String())
		if !ok || got != impl {
			t.Errorf("ParseImplementation(%q) = %v, %v", impl.String(), got, ok)
		}
	}
	for i, op := range Operations {
		if int(op) != i {
			t.Errorf("Operations[%d] = %v", i, op)
		}
		got, ok := ParseOperation(op.Token())
		if !ok || got != op {
			t.Errorf("ParseOperation(%q) = %v, %v", op.Token(), got, ok)
		}
	}
	require.Equal(t, "FAILED LOOKUP", FailedLookup.String())
	require.Equal(t, "Operation(9)", Operation(9).String())
	_, ok := ParseImplementation("ll")
	require.False(t, ok)
}
