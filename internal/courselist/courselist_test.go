package courselist

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeCourseFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "courses.txt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{
			name:    "plain list",
			content: "TDA357\nDAT038\nEDA452\n",
			want:    []string{"TDA357", "DAT038", "EDA452"},
		},
		{
			name:    "blank lines and comments skipped",
			content: "# autumn courses\nTDA357\n\n   \n# spring\nDAT038\n",
			want:    []string{"TDA357", "DAT038"},
		},
		{
			name:    "codes normalized to upper case",
			content: "  tda357  \nDat038\n",
			want:    []string{"TDA357", "DAT038"},
		},
		{
			name:    "duplicates keep first occurrence",
			content: "TDA357\nDAT038\ntda357\n",
			want:    []string{"TDA357", "DAT038"},
		},
		{
			name:    "no trailing newline",
			content: "TDA357",
			want:    []string{"TDA357"},
		},
		{
			name:    "empty file",
			content: "",
			want:    []string{},
		},
		{
			name:    "only comments",
			content: "# nothing here\n",
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeCourseFile(t, tt.content)

			got, err := Load(path)
			if err != nil {
				t.Fatalf("Load() unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Load() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.txt")

	_, err := Load(path)
	if err == nil {
		t.Fatal("Load() expected error for missing file")
	}

	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("Load() error = %T, want *ConfigError", err)
	}
	if cfgErr.Path != path {
		t.Errorf("ConfigError.Path = %q, want %q", cfgErr.Path, path)
	}
	if !strings.Contains(cfgErr.Error(), path) {
		t.Errorf("error message %q should name the file", cfgErr.Error())
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Error("ConfigError should unwrap to the underlying os error")
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"tda357", "TDA357"},
		{"  TDA357  ", "TDA357"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeAll_DropsEmpty(t *testing.T) {
	got := NormalizeAll([]string{"tda357", "", "  ", "TDA357"})
	want := []string{"TDA357"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NormalizeAll() = %v, want %v", got, want)
	}
}
