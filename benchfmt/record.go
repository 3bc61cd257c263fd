// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchfmt reads the CSV files produced by the hash map
// benchmark driver.
//
// Every file holds one trial run. Its first row is a header and is
// always skipped; each following row records the time one
// implementation took to perform one operation over a range of
// entries at a given load factor:
//
//	HashMap,"Number of elements",Load factor,Operation,Time
//	LL,1000,0.75,put,48211
//
// The reader is structured like bufio.Scanner. It yields typed Records
// and reports malformed input as *SyntaxError values carrying the file
// name and line of the offending row.
package benchfmt

import "fmt"

// An Implementation identifies one of the hash map variants under
// comparison. The order of the constants is significant: it is the
// order in which implementations are grouped and plotted.
type Implementation int

const (
	LL Implementation = iota // separate chaining with linked lists
	DH                       // double hashing
	RH                       // Robin Hood hashing

	NumImplementations = iota
)

// Implementations lists every Implementation in plotting order.
var Implementations = [NumImplementations]Implementation{LL, DH, RH}

var implNames = [NumImplementations]string{"LL", "DH", "RH"}

func (i Implementation) String() string {
	if i >= 0 && int(i) < len(implNames) {
		return implNames[i]
	}
	return fmt.Sprintf("Implementation(%d)", int(i))
}

// ParseImplementation returns the Implementation named by tag.
func ParseImplementation(tag string) (Implementation, bool) {
	for i, name := range implNames {
		if name == tag {
			return Implementation(i), true
		}
	}
	return 0, false
}

// An Operation is one of the measured hash map actions.
type Operation int

const (
	Put Operation = iota
	Lookup
	Remove
	FailedLookup

	NumOperations = iota
)

// Operations lists every Operation in declaration order.
var Operations = [NumOperations]Operation{Put, Lookup, Remove, FailedLookup}

var opNames = [NumOperations]string{"PUT", "LOOKUP", "REMOVE", "FAILED LOOKUP"}

// opTokens maps the operation column of the input to an Operation.
var opTokens = map[string]Operation{
	"put":               Put,
	"containsKey":       Lookup,
	"remove":            Remove,
	"containsKeyFailed": FailedLookup,
}

// String returns the display name of op, such as "FAILED LOOKUP".
func (op Operation) String() string {
	if op >= 0 && int(op) < len(opNames) {
		return opNames[op]
	}
	return fmt.Sprintf("Operation(%d)", int(op))
}

// Token returns the input token that denotes op.
func (op Operation) Token() string {
	for tok, o := range opTokens {
		if o == op {
			return tok
		}
	}
	return ""
}

// ParseOperation returns the Operation denoted by the input token tok.
func ParseOperation(tok string) (Operation, bool) {
	op, ok := opTokens[tok]
	return op, ok
}

// A Record is a single parsed measurement row.
type Record struct {
	Impl Implementation

	// Range is the number of entries in the hash map when the
	// measurement was taken.
	Range int64

	// LoadFactor is the load factor column, kept verbatim
	// (for example "0.75"). It partitions the data set.
	LoadFactor string

	Op Operation

	// Duration is the measured time in nanoseconds.
	Duration int64

	// fileName and line record where this Record was read from.
	fileName string
	line     int
}

// Pos returns the file name and line number of a Record that was read
// by a Reader. For Records that were not read from a file, it returns
// "", 0.
func (r *Record) Pos() (fileName string, line int) {
	return r.fileName, r.line
}
