package assets

import (
	"bufio"
	"embed"
	"io"
	"strings"
)

//go:embed dictionary.txt faces.txt
var FS embed.FS

// ReadLines returns the non-empty, non-comment lines of r, trimmed.
func ReadLines(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, s)
	}
	return out, sc.Err()
}

func readLines(name string) ([]string, error) {
	f, err := FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadLines(f)
}

// DictionaryLines returns the embedded hangman dictionary ("WORD|definition").
func DictionaryLines() ([]string, error) {
	return readLines("dictionary.txt")
}

// FaceLines returns the embedded memory-game tokens.
func FaceLines() ([]string, error) {
	return readLines("faces.txt")
}
