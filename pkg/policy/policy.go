package policy

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// BannedPhrase is a phrase that marks text as machine-written, with the wording the fixer substitutes for it.
type BannedPhrase struct {
	Phrase      string `json:"phrase" yaml:"phrase"`
	Replacement string `json:"replacement,omitempty" yaml:"replacement,omitempty"`
}

// Policy carries the options the checker and fixer evaluate against.
type Policy struct {
	CurrentYear   int
	BannedPhrases []BannedPhrase
}

// DefaultBannedPhrases returns the built-in phrase table.
func DefaultBannedPhrases() (phrases []BannedPhrase) {
	phrases = []BannedPhrase{
		{Phrase: "delve into", Replacement: "explore"},
		{Phrase: "tapestry", Replacement: "collection"},
		{Phrase: "landscape", Replacement: "environment"},
		{Phrase: "realm", Replacement: "area"},
		{Phrase: "it's worth noting", Replacement: "Note that"},
		{Phrase: "in conclusion", Replacement: "To sum up"},
		{Phrase: "unlock", Replacement: "open up"},
		{Phrase: "leverage", Replacement: "use"},
		{Phrase: "robust", Replacement: "strong"},
		{Phrase: "holistic", Replacement: "comprehensive"},
		{Phrase: "paradigm", Replacement: "model"},
		{Phrase: "game-changer", Replacement: "major shift"},
		{Phrase: "revolutionize", Replacement: "transform"},
		{Phrase: "cutting-edge", Replacement: "modern"},
	}
	return phrases
}

// Default returns the built-in policy for the given year.
func Default(year int) (p Policy) {
	p = Policy{
		CurrentYear:   year,
		BannedPhrases: DefaultBannedPhrases(),
	}
	return p
}

// Validate checks that the policy can drive both the checker and the fixer.
func (p Policy) Validate() (err error) {
	if p.CurrentYear < 1900 || p.CurrentYear > 9999 {
		err = errors.Errorf("current year %d out of range", p.CurrentYear)
		return err
	}

	seen := make(map[string]bool, len(p.BannedPhrases))
	for i, bp := range p.BannedPhrases {
		key := strings.ToLower(strings.TrimSpace(bp.Phrase))
		if key == "" {
			err = errors.Errorf("banned phrase at index %d is empty", i)
			return err
		}
		if seen[key] {
			err = errors.Errorf("banned phrase %q listed twice", bp.Phrase)
			return err
		}
		seen[key] = true
	}

	// A replacement that is itself banned would be rewritten again on the next pass.
	for _, bp := range p.BannedPhrases {
		if bp.Replacement == "" {
			continue
		}
		for _, other := range p.BannedPhrases {
			if other.Pattern().MatchString(bp.Replacement) {
				err = errors.Errorf("replacement %q for %q contains banned phrase %q", bp.Replacement, bp.Phrase, other.Phrase)
				return err
			}
		}
	}

	return err
}

// Pattern compiles a case-insensitive whole-phrase matcher for the phrase.
func (b BannedPhrase) Pattern() (re *regexp.Regexp) {
	re = PhrasePattern(b.Phrase)
	return re
}

// PhrasePattern builds a case-insensitive matcher for phrase that only matches at word boundaries.
// Word boundaries are only asserted on edges that are word characters, so phrases such as
// "game-changer" or "C++" still match. Interior whitespace matches any whitespace run and an
// ASCII apostrophe also matches a typographic one.
func PhrasePattern(phrase string) (re *regexp.Regexp) {
	phrase = strings.TrimSpace(phrase)
	if phrase == "" {
		re = regexp.MustCompile(`\b\B`)
		return re
	}

	fields := strings.Fields(phrase)
	for i, f := range fields {
		f = regexp.QuoteMeta(f)
		fields[i] = strings.ReplaceAll(f, "'", "['’]")
	}
	body := strings.Join(fields, `\s+`)

	first, _ := utf8.DecodeRuneInString(phrase)
	last, _ := utf8.DecodeLastRuneInString(phrase)

	expr := "(?i)"
	if isWordRune(first) {
		expr += `\b`
	}
	expr += body
	if isWordRune(last) {
		expr += `\b`
	}

	re = regexp.MustCompile(expr)
	return re
}

// isWordRune mirrors RE2's ASCII notion of a word character used by \b.
func isWordRune(r rune) (ok bool) {
	ok = r < unicode.MaxASCII && (r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r))
	return ok
}
