// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchfmt

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFiles(t *testing.T) {
	// Switch to testdata/files directory.
	oldDir, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(oldDir)
	if err := os.Chdir("testdata/files"); err != nil {
		t.Fatal(err)
	}

	check := func(f *Files, want ...string) {
		t.Helper()
		for f.Scan() {
			if len(want) == 0 {
				t.Errorf("got record, want end of stream")
				return
			}
			res := f.Result()
			fileName, _ := res.Pos()
			got := fmt.Sprintf("%d %s %v %d", f.Index(), fileName, res.Impl, res.Duration)
			if got != want[0] {
				t.Errorf("got %q, want %q", got, want[0])
			}
			want = want[1:]
		}

		err := f.Err()
		wantErr := ""
		if len(want) == 1 && strings.HasPrefix(want[0], "err ") {
			wantErr = want[0][len("err "):]
			want = want[1:]
		}
		if err == nil && wantErr != "" {
			t.Errorf("got success, want error %s", wantErr)
		} else if err != nil && wantErr == "" {
			t.Errorf("got error %s", err)
		} else if err != nil && err.Error() != wantErr {
			t.Errorf("got error %s, want error %s", err, wantErr)
		}

		if len(want) != 0 {
			t.Errorf("got end of stream, want %v", want)
		}
	}

	check(
		&Files{Paths: []string{"a.csv", "b.csv"}},
		"0 a.csv LL 10", "0 a.csv DH 20", "1 b.csv RH 30",
	)
	check(
		&Files{Paths: []string{"b.csv", "a.csv"}},
		"0 b.csv RH 30", "1 a.csv LL 10", "1 a.csv DH 20",
	)
	check(
		&Files{Paths: []string{"a.csv", "missing.csv"}},
		"0 a.csv LL 10", "0 a.csv DH 20", "err open missing.csv: "+syscall.ENOENT.Error(),
	)
	check(
		&Files{Paths: []string{"b.csv", "c-bad.csv", "a.csv"}},
		"0 b.csv RH 30", `err c-bad.csv:2: invalid duration "ten"`,
	)
	check(&Files{})
}

func TestReadFile(t *testing.T) {
	recs, err := ReadFile(filepath.Join("testdata", "files", "a.csv"))
	require.NoError(t, err)
	require.Len(t, recs, 2)
	require.Equal(t, DH, recs[1].Impl)
	require.Equal(t, int64(20), recs[1].Duration)

	_, err = ReadFile(filepath.Join("testdata", "files", "c-bad.csv"))
	require.True(t, errors.Is(err, ErrMalformedRecord))
}

func TestDir(t *testing.T) {
	paths, err := Dir(filepath.Join("testdata", "files"))
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join("testdata", "files", "a.csv"),
		filepath.Join("testdata", "files", "b.csv"),
		filepath.Join("testdata", "files", "c-bad.csv"),
	}, paths)

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0777))
	paths, err = Dir(dir)
	require.NoError(t, err)
	require.Empty(t, paths, "subdirectories are not trial files")
}

func TestDirSymlinks(t *testing.T) {
	dir := t.TempDir()
	target, err := filepath.Abs(filepath.Join("testdata", "files", "a.csv"))
	require.NoError(t, err)
	if err := os.Symlink(target, filepath.Join(dir, "linked.csv")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0777))
	require.NoError(t, os.Symlink(filepath.Join(dir, "sub"), filepath.Join(dir, "linked-dir")))
	require.NoError(t, os.Symlink(filepath.Join(dir, "missing.csv"), filepath.Join(dir, "dangling.csv")))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "plain.csv"), []byte("header\n"), 0666))

	paths, err := Dir(dir)
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(dir, "linked.csv"),
		filepath.Join(dir, "plain.csv"),
	}, paths)

	recs, err := ReadFile(paths[0])
	require.NoError(t, err)
	require.Len(t, recs, 2)
}

func TestDirNotFound(t *testing.T) {
	for _, path := range []string{
		filepath.Join("testdata", "no-such-dir"),
		filepath.Join("testdata", "files", "a.csv"),
	} {
		_, err := Dir(path)
		if !errors.Is(err, ErrInputNotFound) {
			t.Errorf("Dir(%q) = %v, want ErrInputNotFound", path, err)
		}
	}
}
