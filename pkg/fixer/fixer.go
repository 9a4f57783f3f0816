// Package fixer repairs generated articles: duplicated structural sections are removed and banned phrases are
// replaced with plainer wording.
package fixer

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/nikogura/content-qa/pkg/markup"
	"github.com/nikogura/content-qa/pkg/policy"
)

// Action classifies a repair.
type Action string

// Repair actions.
const (
	ActionRemoveDuplicate Action = "remove_duplicate"
	ActionReplacePhrase   Action = "replace_phrase"
)

// FixRecord describes one repair applied to a document.
type FixRecord struct {
	Action      Action `json:"action"`
	Description string `json:"description"`
}

// Result is a repaired document and the repairs that produced it, in the order they were applied.
type Result struct {
	Repaired string      `json:"-"`
	Changes  []FixRecord `json:"changes"`
}

// Changed reports whether any repair was applied.
func (r Result) Changed() (changed bool) {
	changed = len(r.Changes) > 0
	return changed
}

// FixPattern defines a search-and-replace pattern for one banned phrase.
type FixPattern struct {
	Phrase      string
	Pattern     *regexp.Regexp
	Replacement string
}

// Fixer applies deterministic repairs. It holds no mutable state and may be shared between goroutines.
type Fixer struct {
	phrasePatterns []FixPattern
}

//nolint:gochecknoglobals // Sections deduplicated, in repair order
var dedupeOrder = []markup.Kind{markup.KeyTakeaways, markup.FAQ, markup.Conclusion}

// NewFixer creates a fixer for the given policy. Banned phrases without a replacement are detected by the
// checker but left alone here.
func NewFixer(p policy.Policy) (fixer *Fixer) {
	fixer = &Fixer{
		phrasePatterns: buildPhrasePatterns(p.BannedPhrases),
	}
	return fixer
}

// Patterns returns the phrase patterns the fixer applies, in table order.
func (f *Fixer) Patterns() (patterns []FixPattern) {
	patterns = make([]FixPattern, len(f.phrasePatterns))
	copy(patterns, f.phrasePatterns)
	return patterns
}

// Repair removes every duplicate key takeaways box, FAQ section and conclusion section after the first, then
// replaces banned phrases in text content. Repairing an already repaired document changes nothing.
func (f *Fixer) Repair(doc string) (result Result) {
	result.Repaired = doc
	result.Changes = []FixRecord{}

	var removed map[markup.Kind]bool
	result.Repaired, removed = dedupeSections(result.Repaired)
	for _, kind := range dedupeOrder {
		if removed[kind] {
			result.Changes = append(result.Changes, FixRecord{
				Action:      ActionRemoveDuplicate,
				Description: fmt.Sprintf("Removed duplicate %s", kind),
			})
		}
	}

	var replaced []FixPattern
	result.Repaired, replaced = f.applyPhraseFixes(result.Repaired)
	for _, pattern := range replaced {
		result.Changes = append(result.Changes, FixRecord{
			Action:      ActionReplacePhrase,
			Description: fmt.Sprintf("Replaced AI phrase %q with %q", pattern.Phrase, pattern.Replacement),
		})
	}

	return result
}

// dedupeSections runs the duplicate removals in order until a full pass removes nothing. Removing one kind can
// cut the opening tag of a block of another kind and expose its nested duplicates. Every removal shrinks the
// document, so the loop ends.
func dedupeSections(doc string) (fixed string, removed map[markup.Kind]bool) {
	fixed = doc
	removed = make(map[markup.Kind]bool, len(dedupeOrder))

	for again := true; again; {
		again = false
		for _, kind := range dedupeOrder {
			var changed bool
			fixed, changed = removeDuplicates(fixed, kind)
			if changed {
				removed[kind] = true
				again = true
			}
		}
	}

	return fixed, removed
}

// removeDuplicates keeps the first occurrence of the section kind and drops the rest.
func removeDuplicates(doc string, kind markup.Kind) (fixed string, removed bool) {
	fixed = doc

	spans := markup.Locate(doc, kind)
	if len(spans) < 2 {
		return fixed, removed
	}

	fixed = markup.Remove(doc, spans[1:])
	removed = true
	return fixed, removed
}

// applyPhraseFixes rewrites text nodes only, so attribute values and script bodies keep their wording.
// A phrase split across inline tags is not matched.
func (f *Fixer) applyPhraseFixes(doc string) (fixed string, applied []FixPattern) {
	hits := make([]bool, len(f.phrasePatterns))

	fixed = markup.RewriteText(doc, func(text string) string {
		for i, pattern := range f.phrasePatterns {
			if !pattern.Pattern.MatchString(text) {
				continue
			}
			hits[i] = true
			replacement := pattern.Replacement
			text = pattern.Pattern.ReplaceAllStringFunc(text, func(match string) string {
				return matchCase(match, replacement)
			})
		}
		return text
	})

	for i, hit := range hits {
		if hit {
			applied = append(applied, f.phrasePatterns[i])
		}
	}

	return fixed, applied
}

// matchCase capitalizes the replacement when the matched text starts with a capital.
func matchCase(match, replacement string) (out string) {
	out = replacement

	first, _ := utf8.DecodeRuneInString(match)
	if !unicode.IsUpper(first) {
		return out
	}

	r, size := utf8.DecodeRuneInString(replacement)
	if r == utf8.RuneError {
		return out
	}

	out = string(unicode.ToUpper(r)) + replacement[size:]
	return out
}

func buildPhrasePatterns(phrases []policy.BannedPhrase) (patterns []FixPattern) {
	patterns = make([]FixPattern, 0, len(phrases))
	for _, bp := range phrases {
		if strings.TrimSpace(bp.Phrase) == "" || bp.Replacement == "" {
			continue
		}
		patterns = append(patterns, FixPattern{
			Phrase:      bp.Phrase,
			Pattern:     bp.Pattern(),
			Replacement: bp.Replacement,
		})
	}
	return patterns
}
