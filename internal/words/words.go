// internal/words/words.go
//
// Word list and alphabet management for the solver.
//
// Responsibilities:
//   - Load the guess dictionary from an environment-provided file or fall
//     back to an embedded default list.
//   - Maintain a lookup set for validity checks.
//   - Convert between words and alphabet letter indices (the decoding used
//     by the solver's candidate reduction and by the HTTP layer).
//
// Initialization behavior (Init):
//   1. If WORDS_FILE is set, load one word per line from it.
//   2. Otherwise fall back to the embedded default list.
//
// Environment variables:
//   WORDS_FILE=/path/to/words.txt
//   WORD_LENGTH=5 (letters per word; lines of other lengths are dropped)
//
// Constraints:
//   • Words are normalized to lowercase a–z.
//   • Initialization runs once (sync.Once).

package words

import (
	"bufio"
	"crypto/rand"
	_ "embed"
	"errors"
	"fmt"
	"math/big"
	"os"
	"strconv"
	"strings"
	"sync"
)

//go:embed default_words.txt
var embeddedWords string

// lowercase ASCII alphabet; letter indices index into this.
const alphabet = "abcdefghijklmnopqrstuvwxyz"

var (
	initOnce   sync.Once
	list       []string            // ordered dictionary
	wordSet    map[string]struct{} // membership lookups
	wordLen    int
	initialErr error
)

// Init loads the word list exactly once.
// Returns an error if the list ends up empty.
func Init() error {
	initOnce.Do(func() {
		wordLen = 5
		if v := os.Getenv("WORD_LENGTH"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				initialErr = fmt.Errorf("words: bad WORD_LENGTH %q", v)
				return
			}
			wordLen = n
		}

		if path := os.Getenv("WORDS_FILE"); path != "" {
			var err error
			list, err = readWordFile(path, wordLen)
			if err != nil {
				initialErr = err
				return
			}
		} else {
			list = normalizeLines(embeddedWords, wordLen)
		}

		wordSet = make(map[string]struct{}, len(list))
		for _, w := range list {
			wordSet[w] = struct{}{}
		}

		if len(list) == 0 {
			initialErr = errors.New("words: word list is empty")
		}
	})
	return initialErr
}

// readWordFile loads one word per line from a file, lowercases, trims,
// and keeps only alphabetic words of the configured length.
func readWordFile(path string, n int) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		w := strings.TrimSpace(strings.ToLower(sc.Text()))
		if len(w) == n && isAlpha(w) {
			out = append(out, w)
		}
	}
	return out, sc.Err()
}

// normalizeLines processes a multiline string into a slice of valid
// lowercase words of length n.
func normalizeLines(s string, n int) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		w := strings.TrimSpace(strings.ToLower(line))
		if len(w) == n && isAlpha(w) {
			out = append(out, w)
		}
	}
	return out
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// All returns a copy of the loaded dictionary in its load order.
func All() []string {
	return append([]string(nil), list...)
}

// Length returns the configured letters-per-word.
func Length() int { return wordLen }

// Count returns how many words are loaded.
func Count() int { return len(list) }

// Random returns a uniformly random dictionary word.
// Falls back to "crane" if the list is not loaded.
func Random() string {
	if len(list) == 0 {
		return "crane"
	}
	nBig, _ := rand.Int(rand.Reader, big.NewInt(int64(len(list))))
	return list[nBig.Int64()]
}

// IsWord reports whether w is in the dictionary.
func IsWord(w string) bool {
	_, ok := wordSet[strings.ToLower(w)]
	return ok
}

// Alphabet returns the valid letters in index order.
func Alphabet() []rune { return []rune(alphabet) }

// IndexWord maps alphabet letter indices to the word they spell.
// Indices outside the alphabet render as '?', which matches no candidate.
func IndexWord(indexes []int, letters []rune) string {
	var b strings.Builder
	b.Grow(len(indexes))
	for _, i := range indexes {
		if i < 0 || i >= len(letters) {
			b.WriteByte('?')
			continue
		}
		b.WriteRune(letters[i])
	}
	return b.String()
}

// WordIndexes maps a word to its alphabet letter indices.
func WordIndexes(w string, letters []rune) ([]int, error) {
	pos := make(map[rune]int, len(letters))
	for i, r := range letters {
		pos[r] = i
	}
	out := make([]int, 0, len(w))
	for _, r := range strings.ToLower(w) {
		i, ok := pos[r]
		if !ok {
			return nil, fmt.Errorf("words: letter %q not in alphabet", r)
		}
		out = append(out, i)
	}
	return out, nil
}
