package textutil

import (
	"slices"
	"testing"
)

func TestNormalizeTokens(t *testing.T) {
	cases := []struct {
		name   string
		artist string
		title  string
		want   []string
	}{
		{"case folded and sorted", "Linkin Park", "In The End", []string{"end", "in", "linkin", "park", "the"}},
		{"parenthesized annotation", "Daft Punk", "One More Time (Radio Edit)", []string{"daft", "more", "one", "punk", "time"}},
		{"bracketed annotation", "Daft Punk", "One More Time [2001 Remaster]", []string{"daft", "more", "one", "punk", "time"}},
		{"nested annotation", "A", "Song (Live (Berlin))", []string{"a", "song"}},
		{"curly braces survive", "Linkin Park", "In The End {emo4lyf}", []string{"emo4lyf", "end", "in", "linkin", "park", "the"}},
		{"featuring in title", "Linkin Park", "In The End ft. Mike Shinoda", []string{"end", "in", "linkin", "park", "the"}},
		{"featuring in artist", "Calvin Harris featuring Rihanna", "This Is What You Came For", []string{"calvin", "came", "for", "harris", "is", "this", "what", "you"}},
		{"feat only strips its own field", "Artist feat. Guest", "Title", []string{"artist", "title"}},
		{"original mix", "Bicep", "Glue Original Mix", []string{"bicep", "glue"}},
		{"diacritics", "Beyoncé", "Déjà Vu", []string{"beyonce", "deja", "vu"}},
		{"apostrophes collapse", "Guns N' Roses", "Sweet Child O’ Mine", []string{"child", "guns", "mine", "n", "o", "roses", "sweet"}},
		{"punctuation separates", "AC/DC", "T.N.T.", []string{"ac", "dc", "n", "t"}},
		{"duplicates collapse", "Duran Duran", "Duran", []string{"duran"}},
		{"empty artist tolerated", "", "Intro", []string{"intro"}},
		{"symbols only", "!!!", "???", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Normalize(tc.artist, tc.title).Tokens()
			if !slices.Equal(got, tc.want) {
				t.Fatalf("Normalize(%q, %q) = %v, want %v", tc.artist, tc.title, got, tc.want)
			}
		})
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	inputs := [][2]string{
		{"Linkin Park", "In The End {emo4lyf}"},
		{"Beyoncé feat. JAY-Z", "Crazy In Love (Remastered)"},
		{"İstanbul Ensemble", "Straße"},
		{"Bicep", "Glue (Original Mix)"},
		{"f_t", "x-ft_y"},
		{"", ""},
		{"***", "[]"},
	}
	for _, in := range inputs {
		first := Normalize(in[0], in[1])
		second := Normalize(first.String(), "")
		if !first.Equal(second) {
			t.Fatalf("normalize not idempotent for %q: first %v second %v", in, first.Tokens(), second.Tokens())
		}
	}
}

func TestNormalizeIsDeterministic(t *testing.T) {
	a := Normalize("Röyksopp", "What Else Is There? (Trentemøller Remix)")
	b := Normalize("Röyksopp", "What Else Is There? (Trentemøller Remix)")
	if !a.Equal(b) || a.String() != b.String() {
		t.Fatalf("expected identical keys, got %q and %q", a, b)
	}
}

func TestKeyAccessors(t *testing.T) {
	var zero Key
	if !zero.Empty() || zero.Len() != 0 || zero.String() != "" {
		t.Fatalf("unexpected zero key: %+v", zero)
	}
	k := Normalize("Burial", "Archangel")
	if k.Len() != 2 || k.String() != "archangel burial" {
		t.Fatalf("unexpected key %q (len %d)", k.String(), k.Len())
	}
	tokens := k.Tokens()
	tokens[0] = "mutated"
	if k.Tokens()[0] != "archangel" {
		t.Fatal("Tokens must return a copy")
	}
}
