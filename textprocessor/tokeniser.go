package textprocessor

import (
	"regexp"
	"strings"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonLetters = regexp.MustCompile(`[^a-zA-Z ]`)
	spaces     = regexp.MustCompile(`\s+`)
)

// combining diacritical marks block
func isCombiningMark(r rune) bool {
	return r >= 0x0300 && r <= 0x036f
}

type TextProcessor struct {
	stopWords []string
	stopRe    *regexp.Regexp
}

// New builds a TextProcessor. A nil list selects DefaultStopWords, any other
// list replaces the defaults entirely. StructuralKeys are appended in both cases.
func New(stopWords []string) *TextProcessor {
	if stopWords == nil {
		stopWords = DefaultStopWords
	}
	words := withStructuralKeys(stopWords)

	alts := make([]string, 0, len(words))
	for _, w := range words {
		if w == "" {
			continue
		}
		alts = append(alts, regexp.QuoteMeta(w))
	}
	return &TextProcessor{
		stopWords: words,
		stopRe:    regexp.MustCompile(`\b(?:` + strings.Join(alts, "|") + `)\b`),
	}
}

// StopWords returns a copy of the active stop-word list.
func (tp *TextProcessor) StopWords() []string {
	out := make([]string, len(tp.stopWords))
	copy(out, tp.stopWords)
	return out
}

// Tokenise folds text to lowercase ASCII words with stop words removed.
// Text that normalises to nothing yields a single empty token.
func (tp *TextProcessor) Tokenise(text string, tokens *[]string) error {
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.Predicate(isCombiningMark))), text)
	if err != nil {
		return err
	}
	folded = strings.ToLower(folded)
	folded = nonLetters.ReplaceAllString(folded, "")
	folded = tp.stopRe.ReplaceAllString(folded, " ")
	folded = strings.TrimSpace(spaces.ReplaceAllString(folded, " "))

	*tokens = strings.Split(folded, " ")
	return nil
}
