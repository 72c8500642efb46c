package tokenizer

import (
	"slices"
	"testing"
)

// Context classes used by the test dictionary:
//
//	0 BOS/EOS boundary
//	1 proper noun (東京)
//	2 single kanji (東, 京)
//	3 noun
//	4 particle
//	5 unknown word
const testClasses = 6

func testEntries() []DictEntry {
	return []DictEntry{
		{Surface: "東京", LeftID: 1, RightID: 1, Cost: 100, POS: "名詞,固有名詞", InflType: "*", InflForm: "*", BaseForm: "東京", Reading: "トウキョウ", Phonetic: "トーキョー"},
		{Surface: "東", LeftID: 2, RightID: 2, Cost: 500, POS: "名詞,一般", InflType: "*", InflForm: "*", BaseForm: "東", Reading: "ヒガシ", Phonetic: "ヒガシ"},
		{Surface: "京", LeftID: 2, RightID: 2, Cost: 500, POS: "名詞,一般", InflType: "*", InflForm: "*", BaseForm: "京", Reading: "キョウ", Phonetic: "キョー"},
		{Surface: "すもも", LeftID: 3, RightID: 3, Cost: 100, POS: "名詞,一般", InflType: "*", InflForm: "*", BaseForm: "すもも", Reading: "スモモ", Phonetic: "スモモ"},
		{Surface: "もも", LeftID: 3, RightID: 3, Cost: 150, POS: "名詞,一般", InflType: "*", InflForm: "*", BaseForm: "もも", Reading: "モモ", Phonetic: "モモ"},
		{Surface: "も", LeftID: 4, RightID: 4, Cost: 200, POS: "助詞,係助詞", InflType: "*", InflForm: "*", BaseForm: "も", Reading: "モ", Phonetic: "モ"},
		{Surface: "の", LeftID: 4, RightID: 4, Cost: 80, POS: "助詞,連体化", InflType: "*", InflForm: "*", BaseForm: "の", Reading: "ノ", Phonetic: "ノ"},
		{Surface: "うち", LeftID: 3, RightID: 3, Cost: 120, POS: "名詞,非自立", InflType: "*", InflForm: "*", BaseForm: "うち", Reading: "ウチ", Phonetic: "ウチ"},
		{Surface: "テスト", LeftID: 3, RightID: 3, Cost: 100, POS: "名詞,一般", InflType: "*", InflForm: "*", BaseForm: "テスト", Reading: "テスト", Phonetic: "テスト"},
		// Duplicate surface with a different reading, for the insertion
		// order contract.
		{Surface: "もも", LeftID: 3, RightID: 3, Cost: 900, POS: "名詞,固有名詞", InflType: "*", InflForm: "*", BaseForm: "もも", Reading: "モモ", Phonetic: "モモ"},
	}
}

func testMatrix() [][]int16 {
	m := make([][]int16, testClasses)
	for i := range m {
		m[i] = make([]int16, testClasses)
	}
	for j := 0; j < testClasses; j++ {
		m[0][j] = 0 // BOS connects freely
		m[j][0] = 0 // EOS accepts freely
	}
	m[1][1] = 0 // 東京 → 東京
	m[1][2], m[2][1] = 50, 50
	m[2][2] = 50 // 東 → 京, the expensive split from the cost fixture
	m[1][3], m[1][4], m[1][5] = 10, 10, 30
	m[2][3], m[2][4], m[2][5] = 50, 50, 30
	m[3][1], m[3][2] = 50, 50
	m[3][3] = 100 // noun → noun is discouraged
	m[3][4] = 10  // noun → particle is cheap
	m[3][5] = 30
	m[4][1], m[4][2] = 50, 50
	m[4][3] = 10 // particle → noun is cheap
	m[4][4] = 100
	m[4][5] = 30
	m[5][1], m[5][2], m[5][3], m[5][4] = 30, 30, 30, 30
	m[5][5] = 60
	return m
}

func testCharDefs() *CharDefs {
	return &CharDefs{
		Categories: map[string]CharCategory{
			DefaultCategory: {Invoke: false, Group: true, Length: 0},
			"HIRAGANA":      {Invoke: false, Group: true, Length: 0},
			"KATAKANA":      {Invoke: true, Group: true, Length: 0},
			"KANJI":         {Invoke: false, Group: false, Length: 2},
			"KANJINUMERIC":  {Invoke: true, Group: true, Length: 0},
			"ALPHA":         {Invoke: true, Group: true, Length: 0},
			"NUMERIC":       {Invoke: true, Group: true, Length: 0},
		},
		Ranges: []CodeRange{
			{From: 0x3041, To: 0x3096, Category: "HIRAGANA"},
			{From: 0x30A1, To: 0x30FA, Category: "KATAKANA"},
			{From: 0x30FC, To: 0x30FC, Category: "KATAKANA"},
			{From: 0x4E00, To: 0x9FFF, Category: "KANJI"},
			{From: '一', To: '一', Category: "KANJINUMERIC", Compat: []string{"KANJI"}},
			{From: 'A', To: 'Z', Category: "ALPHA"},
			{From: 'a', To: 'z', Category: "ALPHA"},
			{From: '0', To: '9', Category: "NUMERIC"},
		},
	}
}

func testUnknowns() map[string][]UnknownEntry {
	return map[string][]UnknownEntry{
		DefaultCategory: {{LeftID: 5, RightID: 5, Cost: 3000, POS: "記号,一般"}},
		"HIRAGANA":      {{LeftID: 5, RightID: 5, Cost: 3000, POS: "名詞,一般"}},
		"KATAKANA":      {{LeftID: 5, RightID: 5, Cost: 2500, POS: "名詞,一般"}},
		"KANJI":         {{LeftID: 5, RightID: 5, Cost: 4000, POS: "名詞,一般"}},
		"KANJINUMERIC":  {{LeftID: 5, RightID: 5, Cost: 2000, POS: "名詞,数"}},
		"ALPHA":         {{LeftID: 5, RightID: 5, Cost: 2000, POS: "名詞,固有名詞"}},
		"NUMERIC":       {{LeftID: 5, RightID: 5, Cost: 2000, POS: "名詞,数"}},
	}
}

func newTestDict(t testing.TB) *Dict {
	t.Helper()
	d, err := BuildDict(testEntries(), testMatrix(), testCharDefs(), testUnknowns())
	if err != nil {
		t.Fatalf("Failed to build test dictionary: %v", err)
	}
	t.Cleanup(func() { d.Close() })
	return d
}

func collectTokens(t testing.TB, tok *Tokenizer, text string) []Token {
	t.Helper()
	seq, err := tok.Tokenize(text)
	if err != nil {
		t.Fatalf("Tokenize(%q) failed: %v", text, err)
	}
	return slices.Collect(seq)
}

func surfaces(tokens []Token) []string {
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Surface
	}
	return out
}
