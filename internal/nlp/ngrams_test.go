package nlp

import "testing"

var tokens = []string{
	"and", "or", "not", "xor", "lsh", "rsh", "shift", "foo", "bar", "baz",
}

var bigrams = [...][2]string{
	{"and", "or"}, {"or", "not"}, {"not", "xor"}, {"xor", "lsh"},
	{"lsh", "rsh"}, {"rsh", "shift"}, {"shift", "foo"}, {"foo", "bar"},
	{"bar", "baz"},
}

func TestNGrams(t *testing.T) {
	for i, g := range NGrams(tokens, 1, 1) {
		if len(g) != 1 || g[0] != tokens[i] {
			t.Errorf("expected %s, got %v", tokens[i], g)
		}
	}

	for i, b := range NGrams(tokens, 2, 2) {
		expected := bigrams[i]
		if len(b) != 2 || b[0] != expected[0] || b[1] != expected[1] {
			t.Errorf("expected %v, got %v", expected, b)
		}
	}

	// 10 unigrams + 9 bigrams + 8 trigrams
	if n := len(NGrams(tokens, 1, 3)); n != 27 {
		t.Errorf("expected 27 n-grams, got %d", n)
	}
}

func TestNGramSpans(t *testing.T) {
	spans := NGramSpans(3, 1, 5)
	want := []Span{{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3}}
	if len(spans) != len(want) {
		t.Fatalf("got %v, want %v", spans, want)
	}
	for i := range want {
		if spans[i] != want[i] {
			t.Errorf("span %d: got %v, want %v", i, spans[i], want[i])
		}
	}
	if len(NGramSpans(0, 1, 3)) != 0 {
		t.Error("expected no spans for empty input")
	}
}
