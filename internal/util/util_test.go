// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"os"
	"path/filepath"
	"testing"
)

// =============================================================================
// ATOMIC WRITE TESTS
// =============================================================================

func TestAtomicWriteFile_Basic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	data := []byte("Input,From\n1,Meter\n")

	if err := AtomicWriteFile(path, data, 0644); err != nil {
		t.Fatalf("AtomicWriteFile failed: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(got) != string(data) {
		t.Errorf("content = %q, want %q", got, data)
	}
}

func TestAtomicWriteFile_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "out.txt")
	if err := AtomicWriteFile(path, []byte("x"), 0600); err != nil {
		t.Fatalf("AtomicWriteFile failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("file not created: %v", err)
	}
}

func TestAtomicWriteFile_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	_ = AtomicWriteFile(path, []byte("first"), 0644)
	if err := AtomicWriteFile(path, []byte("second"), 0644); err != nil {
		t.Fatalf("AtomicWriteFile failed: %v", err)
	}

	got, _ := os.ReadFile(path)
	if string(got) != "second" {
		t.Errorf("content = %q, want %q", got, "second")
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("expected no temp files left behind, got %d entries", len(entries))
	}
}

// =============================================================================
// TEXT TESTS
// =============================================================================

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"Kilometer", 20, "Kilometer"},
		{"Kilometer per hour", 10, "Kilomet..."},
		{"Meter", 0, ""},
		{"Meter", 3, "Met"},
		{"日本語テキスト", 7, "日本..."},
	}

	for _, tc := range tests {
		if got := Truncate(tc.in, tc.width); got != tc.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tc.in, tc.width, got, tc.want)
		}
	}
}

func TestPadRight(t *testing.T) {
	if got := PadRight("Bit", 6); got != "Bit   " {
		t.Errorf("PadRight = %q", got)
	}
	if got := PadRight("Kilobyte", 3); got != "Kilobyte" {
		t.Errorf("PadRight should not cut, got %q", got)
	}
}

func TestMaxWidth(t *testing.T) {
	if got := MaxWidth([]string{"Bit", "Megabyte", ""}); got != 8 {
		t.Errorf("MaxWidth = %d, want 8", got)
	}
	if got := MaxWidth(nil); got != 0 {
		t.Errorf("MaxWidth(nil) = %d, want 0", got)
	}
}

func TestColumns(t *testing.T) {
	got := Columns([][]string{
		{"Length", "Meter", "1"},
		{"Data", "Megabyte", "1.25e-07"},
	})
	want := "Length  Meter     1\n" +
		"Data    Megabyte  1.25e-07\n"
	if got != want {
		t.Errorf("Columns =\n%s\nwant\n%s", got, want)
	}
}
