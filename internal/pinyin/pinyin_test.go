package pinyin

import (
	"os"
	"path/filepath"
	"testing"
)

func TestToNumbered(t *testing.T) {
	tests := []struct {
		tonal string
		want  string
	}{
		{"yī", "yi1"},
		{"rén", "ren2"},
		{"hǎo", "hao3"},
		{"shì", "shi4"},
		{"lǜ", "lü4"},
		{"ma", "ma5"},
		{"de", "de5"},
		{"  Wǒ ", "wo3"},
		{"rén", "ren2"}, // decomposed accent, NFC normalized first
	}

	for _, tt := range tests {
		if got := ToNumbered(tt.tonal); got != tt.want {
			t.Errorf("ToNumbered(%q) = %q, want %q", tt.tonal, got, tt.want)
		}
	}
}

func TestFindAudio(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"ren2.mp3", "ma.mp3", "le5.mp3"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		tonal string
		want  string
		ok    bool
	}{
		{"rén", "ren2.mp3", true},
		{"ma", "ma.mp3", true}, // neutral tone, found after stripping the 5
		{"le", "le5.mp3", true},
		{"wú", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := FindAudio(dir, tt.tonal)
		if ok != tt.ok {
			t.Errorf("FindAudio(%q) ok = %v, want %v", tt.tonal, ok, tt.ok)
			continue
		}
		if ok && filepath.Base(got) != tt.want {
			t.Errorf("FindAudio(%q) = %q, want %q", tt.tonal, filepath.Base(got), tt.want)
		}
	}
}
