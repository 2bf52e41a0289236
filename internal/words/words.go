// internal/words/words.go
//
// Loads the content both games are played with.
//
// Responsibilities:
//   - Hangman dictionary: "WORD|definition" lines from a file or the embedded default.
//   - Memory tokens: one token per line from a file or the embedded default.
//
// Load behavior:
//   1. A non-empty path is read from disk.
//   2. An empty path falls back to the embedded list in the assets package.
//
// Constraints:
//   • Dictionary words are uppercased; entries without a word are rejected.
//   • Duplicate tokens are rejected, since each is dealt exactly twice.
//   • Both lists must end up non-empty.

package words

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/robalobadob/ethos-games/assets"
	"github.com/robalobadob/ethos-games/internal/hangman"
)

var (
	ErrEmptyDictionary = errors.New("words: dictionary is empty")
	ErrEmptyTokens     = errors.New("words: token list is empty")
)

// Lists holds the loaded content.
type Lists struct {
	Dictionary []hangman.Entry
	Tokens     []string
}

// Load reads the dictionary and token lists. Empty paths use the embedded defaults.
func Load(dictionaryPath, tokensPath string) (*Lists, error) {
	dictLines, err := lines(dictionaryPath, assets.DictionaryLines)
	if err != nil {
		return nil, fmt.Errorf("read dictionary: %w", err)
	}
	dict, err := ParseDictionary(dictLines)
	if err != nil {
		return nil, err
	}

	tokLines, err := lines(tokensPath, assets.FaceLines)
	if err != nil {
		return nil, fmt.Errorf("read tokens: %w", err)
	}
	tokens, err := ParseTokens(tokLines)
	if err != nil {
		return nil, err
	}
	return &Lists{Dictionary: dict, Tokens: tokens}, nil
}

// ParseDictionary converts "WORD|definition" lines into entries.
// A line without "|" is a word with no definition.
func ParseDictionary(lines []string) ([]hangman.Entry, error) {
	out := make([]hangman.Entry, 0, len(lines))
	for i, line := range lines {
		word, def, _ := strings.Cut(line, "|")
		word = strings.ToUpper(strings.TrimSpace(word))
		if word == "" {
			return nil, fmt.Errorf("words: dictionary line %d has no word", i+1)
		}
		if !hangman.HasLetters(word) {
			return nil, fmt.Errorf("words: dictionary line %d: %w", i+1, hangman.ErrNoLetters)
		}
		out = append(out, hangman.Entry{Word: word, Definition: strings.TrimSpace(def)})
	}
	if len(out) == 0 {
		return nil, ErrEmptyDictionary
	}
	return out, nil
}

// ParseTokens validates a token list.
func ParseTokens(lines []string) ([]string, error) {
	seen := make(map[string]struct{}, len(lines))
	out := make([]string, 0, len(lines))
	for _, t := range lines {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			return nil, fmt.Errorf("words: duplicate token %q", t)
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	if len(out) == 0 {
		return nil, ErrEmptyTokens
	}
	return out, nil
}

// Stats returns counts of loaded content: (dictionary entries, tokens).
func (l *Lists) Stats() (entries int, tokens int) {
	return len(l.Dictionary), len(l.Tokens)
}

func lines(path string, embedded func() ([]string, error)) ([]string, error) {
	if path == "" {
		return embedded()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return assets.ReadLines(f)
}
