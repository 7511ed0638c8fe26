package wordlist

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoadWordsSkipsBlankAndComments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "en.txt")
	writeFile(t, path, "# words\nhello\n\n  world  \n")
	words, err := LoadWords(path)
	if err != nil {
		t.Fatalf("load words: %v", err)
	}
	if len(words) != 2 || words[0] != "hello" || words[1] != "world" {
		t.Fatalf("unexpected words: %v", words)
	}
}

func TestLoadWordsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	writeFile(t, path, "\n# nothing\n")
	if _, err := LoadWords(path); err == nil {
		t.Fatalf("expected error for empty list")
	}
}

func TestLoadFiltersByLang(t *testing.T) {
	path := filepath.Join(t.TempDir(), "en.txt")
	writeFile(t, path, "hello\n日本\nnaïve\nworld\n")
	words, err := Load(path, "en")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(words) != 3 || words[1] != "naïve" || words[2] != "world" {
		t.Fatalf("unexpected words: %v", words)
	}
	words, err = Load(path, "fr")
	if err != nil || len(words) != 4 {
		t.Fatalf("expected unfiltered list, got %v, %v", words, err)
	}

	onlyKanji := filepath.Join(t.TempDir(), "x.txt")
	writeFile(t, onlyKanji, "日本\n漢字\n")
	if _, err := Load(onlyKanji, "en"); err == nil {
		t.Fatalf("expected error when the filter drops every word")
	}
}

func TestAvailable(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "fr.txt"), "bonjour\n")
	writeFile(t, filepath.Join(dir, "en.txt"), "hello\n")
	writeFile(t, filepath.Join(dir, "notes.md"), "x\n")
	langs, err := Available(dir)
	if err != nil {
		t.Fatalf("available: %v", err)
	}
	if len(langs) != 2 || langs[0] != "en" || langs[1] != "fr" {
		t.Fatalf("unexpected langs: %v", langs)
	}
	missing, err := Available(filepath.Join(dir, "missing"))
	if err != nil || missing != nil {
		t.Fatalf("expected nil for missing dir, got %v, %v", missing, err)
	}
}
