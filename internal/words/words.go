// internal/words/words.go
//
// Dictionary management for the game engine.
//
// Responsibilities:
//   - Parse a word list (one word per line) from a file, a reader or the
//     embedded default.
//   - Keep only exactly-five-letter alphabetic entries, uppercased.
//   - Answer membership queries and draw targets through a Picker.
//
// A Dictionary is immutable once built and is safe to share read-only
// across games (and goroutines) for the lifetime of the process.

package words

import (
	"bufio"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"strings"

	"github.com/cenktu/wordle-game/assets"
)

// WordLength is the only accepted entry length.
const WordLength = 5

// ErrEmptyDictionary is returned when a source yields no usable words.
// No game can start without at least one word.
var ErrEmptyDictionary = errors.New("words: dictionary is empty")

// Dictionary is the set of accepted words plus the ordered pool targets are
// drawn from.
type Dictionary struct {
	list []string
	set  map[string]struct{}
}

// Picker chooses an index in [0, n) for the next target word.
type Picker interface {
	Pick(n int) int
}

// PickerFunc adapts a plain function to Picker.
type PickerFunc func(n int) int

// Pick calls f(n).
func (f PickerFunc) Pick(n int) int { return f(n) }

// New builds a Dictionary from an in-memory list, applying the same
// normalization as Parse.
func New(list []string) (*Dictionary, error) {
	d := &Dictionary{set: make(map[string]struct{}, len(list))}
	for _, raw := range list {
		d.add(raw)
	}
	if len(d.list) == 0 {
		return nil, ErrEmptyDictionary
	}
	return d, nil
}

// Parse reads one word per line from r. Blank lines and lines starting
// with '#' are skipped; surviving entries are trimmed and uppercased and
// kept only when they are exactly five ASCII letters.
func Parse(r io.Reader) (*Dictionary, error) {
	var list []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		list = append(list, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("words: read: %w", err)
	}
	return New(list)
}

// LoadFile parses the word list stored at path.
func LoadFile(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("words: open %s: %w", path, err)
	}
	defer f.Close()

	d, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("words: load %s: %w", path, err)
	}
	return d, nil
}

// Default parses the dictionary embedded in the binary.
func Default() (*Dictionary, error) {
	lines, err := assets.DictionaryList()
	if err != nil {
		return nil, fmt.Errorf("words: embedded dictionary: %w", err)
	}
	return New(lines)
}

// Load returns the dictionary stored at path, or the embedded default when
// path is empty.
func Load(path string) (*Dictionary, error) {
	if path == "" {
		return Default()
	}
	return LoadFile(path)
}

func (d *Dictionary) add(raw string) {
	w := Normalize(raw)
	if len(w) != WordLength || !isAlpha(w) {
		return
	}
	if _, dup := d.set[w]; dup {
		return
	}
	d.set[w] = struct{}{}
	d.list = append(d.list, w)
}

// Contains reports whether word is exactly five letters long and, once
// uppercased, a member of the dictionary.
func (d *Dictionary) Contains(word string) bool {
	if len(word) != WordLength {
		return false
	}
	_, ok := d.set[strings.ToUpper(word)]
	return ok
}

// Len returns the number of distinct words.
func (d *Dictionary) Len() int { return len(d.list) }

// Words returns a copy of the words in load order.
func (d *Dictionary) Words() []string {
	return append([]string(nil), d.list...)
}

// Pick draws a word using p. Out-of-range indices are clamped so a faulty
// picker can never yield a word outside the dictionary.
func (d *Dictionary) Pick(p Picker) string {
	i := p.Pick(len(d.list))
	if i < 0 || i >= len(d.list) {
		i = 0
	}
	return d.list[i]
}

// Normalize trims and uppercases a raw entry.
func Normalize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// isAlpha reports whether s is all uppercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// RandomPicker draws uniformly with crypto/rand.
type RandomPicker struct{}

// Pick returns a uniformly random index in [0, n).
func (RandomPicker) Pick(n int) int {
	if n <= 1 {
		return 0
	}
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0
	}
	return int(nBig.Int64())
}
