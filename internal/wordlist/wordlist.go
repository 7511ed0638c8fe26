// Package wordlist loads word lists used as typewriter text.
package wordlist

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const listExt = ".txt"

// LoadWords reads one word per line from the provided file path.
// Blank lines and lines starting with '#' are skipped.
func LoadWords(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only word list.
			_ = cerr
		}
	}()

	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("word list is empty")
	}
	return words, nil
}

// Load reads a word list and keeps the words accepted by the filter for lang.
func Load(path, lang string) ([]string, error) {
	words, err := LoadWords(path)
	if err != nil {
		return nil, err
	}
	keep := FilterForLang(lang)
	filtered := words[:0]
	for _, w := range words {
		if keep(w) {
			filtered = append(filtered, w)
		}
	}
	if len(filtered) == 0 {
		return nil, fmt.Errorf("word list %s has no words for language %q", path, lang)
	}
	return filtered, nil
}

// Available returns the language codes of the word lists stored in dir.
// A missing directory yields no lists.
func Available(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var langs []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != listExt {
			continue
		}
		langs = append(langs, strings.TrimSuffix(entry.Name(), listExt))
	}
	sort.Strings(langs)
	return langs, nil
}
