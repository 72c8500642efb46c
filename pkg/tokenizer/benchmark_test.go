package tokenizer

import (
	"strings"
	"testing"
)

func BenchmarkTokenize(b *testing.B) {
	tok := New(newTestDict(b))
	const text = "すもももももももものうち、東京タワーのコーヒー。"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		seq, err := tok.Tokenize(text)
		if err != nil {
			b.Fatal(err)
		}
		for range seq {
		}
	}
}

func BenchmarkTokenizeUncached(b *testing.B) {
	cfg := DefaultConfig()
	cfg.CacheSize = 0
	tok := NewWithConfig(newTestDict(b), cfg)
	const text = "すもももももももものうち、東京タワーのコーヒー。"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		seq, err := tok.Tokenize(text)
		if err != nil {
			b.Fatal(err)
		}
		for range seq {
		}
	}
}

func BenchmarkTokenizeLong(b *testing.B) {
	tok := New(newTestDict(b))
	text := strings.Repeat("すもももももももものうち、東京タワー。", 100)
	b.SetBytes(int64(len(text)))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		seq, err := tok.Tokenize(text)
		if err != nil {
			b.Fatal(err)
		}
		for range seq {
		}
	}
}

func BenchmarkWakati(b *testing.B) {
	tok := New(newTestDict(b))
	const text = "すもももももももものうち、東京タワーのコーヒー。"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		seq, err := tok.Wakati(text)
		if err != nil {
			b.Fatal(err)
		}
		for range seq {
		}
	}
}

func BenchmarkLookup(b *testing.B) {
	d := newTestDict(b)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		d.Lookup("すもももももももものうち")
	}
}
