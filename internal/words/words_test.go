package words

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/ethos-games/internal/hangman"
)

func TestLoad_EmbeddedDefaults(t *testing.T) {
	l, err := Load("", "")
	require.NoError(t, err)

	entries, tokens := l.Stats()
	assert.Equal(t, 20, entries)
	assert.Equal(t, 8, tokens)
	assert.Contains(t, l.Dictionary, hangman.Entry{
		Word:       "GAS",
		Definition: "A fee paid to perform a transaction or execute a smart contract on Ethereum.",
	})
}

func TestLoad_FromFiles(t *testing.T) {
	dir := t.TempDir()
	dict := filepath.Join(dir, "dict.txt")
	toks := filepath.Join(dir, "toks.txt")
	require.NoError(t, os.WriteFile(dict, []byte("# comment\nnode|A computer on the network\n\nfork\n"), 0o644))
	require.NoError(t, os.WriteFile(toks, []byte("a.png\nb.png\n"), 0o644))

	l, err := Load(dict, toks)
	require.NoError(t, err)
	assert.Equal(t, []hangman.Entry{
		{Word: "NODE", Definition: "A computer on the network"},
		{Word: "FORK"},
	}, l.Dictionary)
	assert.Equal(t, []string{"a.png", "b.png"}, l.Tokens)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.txt"), "")
	assert.Error(t, err)
}

func TestParseDictionary(t *testing.T) {
	_, err := ParseDictionary(nil)
	assert.ErrorIs(t, err, ErrEmptyDictionary)

	_, err = ParseDictionary([]string{"|no word"})
	assert.Error(t, err)

	_, err = ParseDictionary([]string{"GAS|fee", "2024|a year"})
	assert.ErrorIs(t, err, hangman.ErrNoLetters)
	assert.ErrorContains(t, err, "line 2")

	got, err := ParseDictionary([]string{" web3 | A new iteration of the internet "})
	require.NoError(t, err)
	assert.Equal(t, []hangman.Entry{{Word: "WEB3", Definition: "A new iteration of the internet"}}, got)
}

func TestParseTokens(t *testing.T) {
	_, err := ParseTokens([]string{"  ", ""})
	assert.ErrorIs(t, err, ErrEmptyTokens)

	_, err = ParseTokens([]string{"a", "b", "a"})
	assert.Error(t, err)

	got, err := ParseTokens([]string{" a ", "b"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got)
}
