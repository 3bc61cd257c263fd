// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package texttab

import (
	"strings"
	"testing"
)

func TestTable(t *testing.T) {
	check := func(tab *Table, want string) {
		t.Helper()
		var buf strings.Builder
		if err := tab.Format(&buf); err != nil {
			t.Fatal(err)
		}
		if got := buf.String(); got != want {
			t.Errorf("got:\n%s\nwant:\n%s", got, want)
		}
	}

	var tab Table
	check(&tab, "")

	tab.Row().Cell("a").Cell("bb", Right).Cell("c")
	tab.Row().Cell("aaa").Cell("b", Right).Cell("cc")
	check(&tab, "a    bb  c\naaa   b  cc\n")

	// Short rows and cells added before Row.
	var tab2 Table
	tab2.Cell("x").Cell("y")
	tab2.Row().Cell("longer")
	check(&tab2, "x       y\nlonger\n")
}
