package textutil

import (
	"regexp"
	"slices"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// annotationPattern matches one innermost (...) or [...] group.
var annotationPattern = regexp.MustCompile(`[(\[][^()\[\]]*[)\]]`)

var featuringMarkers = map[string]struct{}{
	"feat":      {},
	"ft":        {},
	"featuring": {},
}

// mixAnnotations are dropped when they appear as consecutive tokens.
var mixAnnotations = [][2]string{
	{"original", "mix"},
	{"orig", "mix"},
}

// Key is the normalized token set of an artist/title pair. The zero value is
// the empty set.
type Key struct {
	tokens []string
}

// Normalize canonicalizes an artist/title pair into a sorted, de-duplicated
// token set. Artist and title contribute to one token stream because field
// usage is not consistent across sources.
func Normalize(artist, title string) Key {
	tokens := append(fieldTokens(artist), fieldTokens(title)...)
	if len(tokens) == 0 {
		return Key{}
	}
	slices.Sort(tokens)
	return Key{tokens: slices.Compact(tokens)}
}

// Tokens returns a copy of the sorted tokens.
func (k Key) Tokens() []string {
	return slices.Clone(k.tokens)
}

// Len returns the number of distinct tokens.
func (k Key) Len() int {
	return len(k.tokens)
}

// Empty reports whether the key has no tokens.
func (k Key) Empty() bool {
	return len(k.tokens) == 0
}

// String joins the tokens with single spaces.
func (k Key) String() string {
	return strings.Join(k.tokens, " ")
}

// Equal reports whether both keys hold the same tokens.
func (k Key) Equal(other Key) bool {
	return slices.Equal(k.tokens, other.tokens)
}

func fieldTokens(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	folded := foldText(value)
	folded = stripAnnotations(folded)
	tokens := tokenize(folded)
	tokens = stripFeaturing(tokens)
	return stripMixAnnotations(tokens)
}

// foldText applies case folding and removes combining marks. Folding runs
// first because some folds introduce combining marks of their own.
func foldText(value string) string {
	folded := cases.Fold().String(value)
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, folded)
	if err != nil {
		return folded
	}
	return out
}

func stripAnnotations(value string) string {
	for {
		next := annotationPattern.ReplaceAllString(value, " ")
		if next == value {
			return value
		}
		value = next
	}
}

func tokenize(value string) []string {
	var tokens []string
	var b strings.Builder
	flush := func() {
		if b.Len() > 0 {
			tokens = append(tokens, b.String())
			b.Reset()
		}
	}
	for _, r := range value {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.IsMark(r):
			b.WriteRune(r)
		case r == '\'' || r == '’':
			// "don't" and "don’t" both collapse to "dont"
		default:
			flush()
		}
	}
	flush()
	return tokens
}

// stripFeaturing drops the first featuring marker and everything after it.
func stripFeaturing(tokens []string) []string {
	for i, token := range tokens {
		if _, ok := featuringMarkers[token]; ok {
			return tokens[:i]
		}
	}
	return tokens
}

func stripMixAnnotations(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for i := 0; i < len(tokens); i++ {
		if i+1 < len(tokens) && isMixAnnotation(tokens[i], tokens[i+1]) {
			i++
			continue
		}
		out = append(out, tokens[i])
	}
	return out
}

func isMixAnnotation(first, second string) bool {
	for _, pair := range mixAnnotations {
		if first == pair[0] && second == pair[1] {
			return true
		}
	}
	return false
}
