package grapheme

import "testing"

func TestSegmentEmojiLengths(t *testing.T) {
	emojis := []string{
		"💙", "⛳", "⛈",
		"❤️", "💩",
		"✍🏻", "🔥",
		"👍🏻", "🤳🏻",
		"💅🏻", "👨‍⚖️",
		"👩🏻‍🎤", "👩🏻‍✈️",
		"👩‍❤️‍👩", "👨‍👩‍👧",
		"👩‍👩‍👦",
		"👩‍❤️‍💋‍👩", "👨‍👩‍👧‍👦",
		"🇯🇵", "1️⃣",
	}
	for _, emoji := range emojis {
		if got := Segment(emoji).Len(); got != 1 {
			t.Fatalf("expected %q to have length 1, got %d", emoji, got)
		}
		if got := Count(emoji); got != 1 {
			t.Fatalf("expected Count(%q) == 1, got %d", emoji, got)
		}
	}
}

func TestSegmentMixedText(t *testing.T) {
	word := Segment("a👍🏻é")
	if word.Len() != 3 {
		t.Fatalf("expected 3 graphemes, got %d", word.Len())
	}
	if word[0] != "a" || word[1] != "👍🏻" || word[2] != "é" {
		t.Fatalf("unexpected graphemes: %q", word)
	}
	if word.String() != "a👍🏻é" {
		t.Fatalf("unexpected join: %q", word.String())
	}
}

func TestSegmentEmpty(t *testing.T) {
	word := Segment("")
	if word == nil || word.Len() != 0 {
		t.Fatalf("expected empty non-nil word, got %#v", word)
	}
}

func TestWidth(t *testing.T) {
	if Width("a") != 1 {
		t.Fatalf("expected width 1 for ascii")
	}
	if Width("世") != 2 {
		t.Fatalf("expected width 2 for wide rune")
	}
}
