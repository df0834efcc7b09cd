// Package assets embeds the default dictionary shipped with the binary.
package assets

import (
	"bufio"
	"embed"
	"strings"
)

//go:embed dictionary.txt
var FS embed.FS

// DictionaryFile is the name of the embedded word list.
const DictionaryFile = "dictionary.txt"

// readLines returns the non-blank, non-comment lines of an embedded file,
// trimmed but otherwise untouched. Filtering and case folding belong to the
// words package.
func readLines(name string) ([]string, error) {
	f, err := FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, s)
	}
	return out, sc.Err()
}

// DictionaryList returns the embedded default dictionary, one entry per line.
func DictionaryList() ([]string, error) {
	return readLines(DictionaryFile)
}
