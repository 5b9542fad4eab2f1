package nlp

import "testing"

func TestTokenize(t *testing.T) {
	for _, c := range [][]string{
		{"Which magazine was started first Arthur's Magazine or First for Women?",
			"Which", "magazine", "was", "started", "first", "Arthur's", "Magazine",
			"or", "First", "for", "Women"},
		{"The Oberoi family is part of a hotel company that has a head office in what city?",
			"The", "Oberoi", "family", "is", "part", "of", "a", "hotel", "company",
			"that", "has", "a", "head", "office", "in", "what", "city"},
		{"Musician and satirist Allie Goertz wrote a song about the U.S. \"The Simpsons\"",
			"Musician", "and", "satirist", "Allie", "Goertz", "wrote", "a", "song",
			"about", "the", "U.S", "The", "Simpsons"},
		{"Saint-Étienne (1,200 km)", "Saint-Étienne", "1,200", "km"},
	} {
		input, want := c[0], c[1:]
		got := Tokenize(input)
		if len(got) != len(want) {
			t.Fatalf("len(Tokenize(%q)) = %d, want %d: %q", input, len(got), len(want), got)
		}
		for i := range got {
			if got[i] != want[i] {
				t.Errorf("token %d: %q != %q", i, got[i], want[i])
			}
		}
	}
}

func TestTokenizePos(t *testing.T) {
	s := "Were Scott Derrickson and Ed Wood of the same nationality?"
	for _, tok := range TokenizePos(s) {
		if s[tok.Start:tok.End] != tok.Text {
			t.Errorf("offsets [%d:%d] give %q, token is %q", tok.Start, tok.End, s[tok.Start:tok.End], tok.Text)
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Ed Wood", "ed wood"},
		{"  Ed \t  Wood ", "ed wood"},
		{"Arthur’s Magazine", "arthur's magazine"},
		{"STRASSE", "strasse"},
		{"Café", "café"},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsStopword(t *testing.T) {
	if !IsStopword("The") {
		t.Error("expected The to be a stopword")
	}
	if IsStopword("Wood") {
		t.Error("did not expect Wood to be a stopword")
	}
}

func TestKey(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Ed Wood (film)", "ed wood film"},
		{"U.S.", "u.s"},
		{"Arthur’s  Magazine", "arthur's magazine"},
		{"!!", ""},
	}
	for _, tt := range tests {
		if got := Key(tt.in); got != tt.want {
			t.Errorf("Key(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	toks := TokenizePos("Where is the U.S. Capitol?")
	if got := JoinTokens(toks[3:5]); got != "u.s capitol" {
		t.Errorf("JoinTokens = %q, want %q", got, "u.s capitol")
	}
}
