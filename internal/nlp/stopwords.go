package nlp

// English function words that never form a mention on their own.
var stopwords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"a", "an", "and", "are", "as", "at", "be", "been", "but", "by", "can",
		"did", "do", "does", "for", "from", "had", "has", "have", "he", "her",
		"his", "how", "i", "if", "in", "into", "is", "it", "its", "many", "much",
		"not", "of", "on", "or", "she", "so", "than", "that", "the", "their",
		"them", "there", "these", "they", "this", "those", "to", "was", "were",
		"what", "when", "where", "which", "who", "whom", "whose", "why", "will",
		"with", "would", "you",
	} {
		stopwords[w] = struct{}{}
	}
}

// IsStopword reports whether the normalized token is a function word.
func IsStopword(token string) bool {
	_, ok := stopwords[Normalize(token)]
	return ok
}
