package nlp

// Span is a half-open token index range [Start, End).
type Span struct {
	Start, End int
}

// Len returns the number of tokens in the span.
func (s Span) Len() int { return s.End - s.Start }

// NGrams generates n-grams of tokens with minN <= n <= maxN, ordered by start
// position, shortest first.
func NGrams(tokens []string, minN, maxN int) [][]string {
	out := make([][]string, 0)
	for _, sp := range NGramSpans(len(tokens), minN, maxN) {
		out = append(out, tokens[sp.Start:sp.End])
	}
	return out
}

// NGramSpans is NGrams over positions only.
func NGramSpans(ntokens, minN, maxN int) []Span {
	out := make([]Span, 0)
	for i := 0; i < ntokens; i++ {
		for n := minN; n <= min(maxN, ntokens-i); n++ {
			out = append(out, Span{i, i + n})
		}
	}
	return out
}
