package dictionary

import (
	"bufio"
	"os"
)

// Dictionary is an immutable set of words. It is built once at startup and
// shared read-only by all workers, so lookups need no synchronization.
type Dictionary struct {
	words map[string]struct{}
}

// New builds a dictionary from the given words.
func New(words ...string) *Dictionary {
	d := &Dictionary{words: make(map[string]struct{}, len(words))}
	for _, w := range words {
		d.words[w] = struct{}{}
	}
	return d
}

// Load reads a word list, one word per line, into a dictionary. Words are
// stored verbatim with no case normalization. A missing or unreadable file
// yields an empty dictionary rather than an error; an empty dictionary
// simply means no word is ever recognized.
func Load(path string) *Dictionary {
	d := &Dictionary{words: make(map[string]struct{})}

	file, err := os.Open(path)
	if err != nil {
		return d
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		d.words[scanner.Text()] = struct{}{}
	}
	// A scanner error mid-file leaves a partial dictionary, which callers
	// tolerate the same way they tolerate an empty one.

	return d
}

// Contains reports exact membership of word. The caller is expected to have
// normalized the token already; no case folding happens here.
func (d *Dictionary) Contains(word string) bool {
	_, ok := d.words[word]
	return ok
}

// Len returns the number of distinct words loaded.
func (d *Dictionary) Len() int {
	return len(d.words)
}
