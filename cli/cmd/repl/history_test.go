package repl

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestHistory(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  []string
	}{
		{
			name:  "append",
			lines: []string{"package.name", "package.version"},
			want:  []string{"package.name", "package.version"},
		},
		{
			name:  "blank_ignored",
			lines: []string{"  ", "lib.path", ""},
			want:  []string{"lib.path"},
		},
		{
			name:  "repeat_last",
			lines: []string{":list", ":list"},
			want:  []string{":list"},
		},
		{
			name:  "duplicate_moves_to_end",
			lines: []string{"a", "b", "c", "a"},
			want:  []string{"b", "c", "a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), baseHistory)
			h := NewHistory(path)

			for _, line := range tt.lines {
				if err := h.Write(line); err != nil {
					t.Fatalf("Write(%q) error = %v", line, err)
				}
			}

			if got := h.Entries(); !slices.Equal(got, tt.want) {
				t.Errorf("Entries() = %q, want %q", got, tt.want)
			}

			// A fresh History reads back the same entries.
			reload := NewHistory(path)
			if err := reload.Load(); err != nil {
				t.Fatalf("Load() error = %v", err)
			}

			if got := reload.Entries(); !slices.Equal(got, tt.want) {
				t.Errorf("reloaded Entries() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHistoryLoadMissing(t *testing.T) {
	h := NewHistory(filepath.Join(t.TempDir(), "absent"))

	if err := h.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if h.Len() != 0 {
		t.Errorf("Len() = %d, want 0", h.Len())
	}
}

func TestHistoryLoadDedup(t *testing.T) {
	path := filepath.Join(t.TempDir(), baseHistory)

	err := os.WriteFile(path, []byte("x\ny\n\nx\n"), 0o600)
	if err != nil {
		t.Fatal(err)
	}

	h := NewHistory(path)
	if err := h.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if got, want := h.Entries(), []string{"y", "x"}; !slices.Equal(got, want) {
		t.Errorf("Entries() = %q, want %q", got, want)
	}
}

func TestHistoryEntry(t *testing.T) {
	h := NewHistory(filepath.Join(t.TempDir(), baseHistory))
	_ = h.Write("first")
	_ = h.Write("second")

	tests := []struct {
		index   int
		want    string
		wantErr error
	}{
		{0, "first", nil},
		{1, "second", nil},
		{2, "", ErrOutOfBounds},
		{-1, "", ErrOutOfBounds},
	}

	for _, tt := range tests {
		got, err := h.Entry(tt.index)
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("Entry(%d) error = %v, want %v", tt.index, err, tt.wantErr)
		}

		if got != tt.want {
			t.Errorf("Entry(%d) = %q, want %q", tt.index, got, tt.want)
		}
	}
}
