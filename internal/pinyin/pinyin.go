// Package pinyin converts tonal pinyin to the numbered form used by
// pronunciation audio file names.
package pinyin

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
)

type toneChar struct {
	base rune
	tone int
}

var toneChars = map[rune]toneChar{
	'ā': {'a', 1}, 'á': {'a', 2}, 'ǎ': {'a', 3}, 'à': {'a', 4},
	'ē': {'e', 1}, 'é': {'e', 2}, 'ě': {'e', 3}, 'è': {'e', 4},
	'ī': {'i', 1}, 'í': {'i', 2}, 'ǐ': {'i', 3}, 'ì': {'i', 4},
	'ō': {'o', 1}, 'ó': {'o', 2}, 'ǒ': {'o', 3}, 'ò': {'o', 4},
	'ū': {'u', 1}, 'ú': {'u', 2}, 'ǔ': {'u', 3}, 'ù': {'u', 4},
	'ǖ': {'ü', 1}, 'ǘ': {'ü', 2}, 'ǚ': {'ü', 3}, 'ǜ': {'ü', 4},
}

// ToNumbered converts tonal pinyin like "yī" to numbered form like
// "yi1". A syllable without any tone mark gets the neutral tone 5.
func ToNumbered(s string) string {
	s = norm.NFC.String(strings.ToLower(strings.TrimSpace(s)))
	tone := 5
	var b strings.Builder
	for _, r := range s {
		if tc, ok := toneChars[r]; ok {
			tone = tc.tone
			b.WriteRune(tc.base)
		} else {
			b.WriteRune(r)
		}
	}
	return fmt.Sprintf("%s%d", b.String(), tone)
}

// FindAudio resolves a tonal pinyin string to an mp3 in dir. Neutral
// tone files may be stored without the trailing "5", so that form is
// tried second.
func FindAudio(dir, tonal string) (string, bool) {
	if tonal == "" {
		return "", false
	}
	numbered := ToNumbered(tonal)
	path := filepath.Join(dir, numbered+".mp3")
	if _, err := os.Stat(path); err == nil {
		return path, true
	}
	if strings.HasSuffix(numbered, "5") {
		path = filepath.Join(dir, strings.TrimSuffix(numbered, "5")+".mp3")
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}
	return "", false
}
