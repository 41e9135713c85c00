package narrative

import (
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// replacements maps filtered words to family-friendly alternatives for
// G/PG/PG-13 content ratings.
var replacements = map[string]string{
	"damn":     "dang",
	"hell":     "heck",
	"ass":      "butt",
	"bastard":  "scoundrel",
	"crap":     "junk",
	"bullshit": "nonsense",
	"shit":     "shoot",
	"fuck":     "fudge",
	"bitch":    "wretch",
	"goddamn":  "gosh-dang",
}

// ContentFilter softens profanity in generated dialogue while preserving
// the case pattern of the original word.
type ContentFilter struct {
	patterns map[string]*regexp.Regexp
	titler   cases.Caser
}

// NewContentFilter precompiles word-boundary patterns for every filtered word.
func NewContentFilter() *ContentFilter {
	cf := &ContentFilter{
		patterns: make(map[string]*regexp.Regexp, len(replacements)),
		titler:   cases.Title(language.English),
	}
	for word := range replacements {
		cf.patterns[word] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(word) + `\b`)
	}
	return cf
}

// Apply returns text with filtered words replaced. Longer words are
// replaced before their substrings so "bullshit" is not rewritten as
// "bull" + the "shit" replacement.
func (cf *ContentFilter) Apply(text string) string {
	result := text
	for _, word := range orderedWords() {
		re := cf.patterns[word]
		replacement := replacements[word]
		result = re.ReplaceAllStringFunc(result, func(match string) string {
			return cf.matchCase(match, replacement)
		})
	}
	return result
}

// matchCase applies the case shape of the matched word to its replacement.
func (cf *ContentFilter) matchCase(original, replacement string) string {
	switch {
	case original == strings.ToUpper(original):
		return strings.ToUpper(replacement)
	case original == cf.titler.String(strings.ToLower(original)):
		return cf.titler.String(replacement)
	default:
		return replacement
	}
}

// orderedWords returns the filtered words longest-first.
func orderedWords() []string {
	words := make([]string, 0, len(replacements))
	for w := range replacements {
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool {
		if len(words[i]) != len(words[j]) {
			return len(words[i]) > len(words[j])
		}
		return words[i] < words[j]
	})
	return words
}

// ShouldFilterContent reports whether dialogue for the given content
// rating must pass through the filter.
func ShouldFilterContent(rating string) bool {
	switch strings.ToUpper(strings.TrimSpace(rating)) {
	case "G", "PG", "PG13", "PG-13":
		return true
	default:
		return false
	}
}
