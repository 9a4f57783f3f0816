package quality

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/nikogura/content-qa/pkg/markup"
	"github.com/nikogura/content-qa/pkg/policy"
	"golang.org/x/text/cases"
)

//nolint:gochecknoglobals // Text preprocessing patterns
var (
	spaceRe     = regexp.MustCompile(`\s+`)
	sentenceRe  = regexp.MustCompile(`[^.!?]+[.!?]+`)
	paragraphRe = regexp.MustCompile(`(?is)<p\b[^>]*>.*?</p>`)
)

// PhraseHit records how often one banned phrase occurs in the text.
type PhraseHit struct {
	Phrase string
	Count  int
}

// Sample is a document reduced to the measurements the rule table reads.
type Sample struct {
	HTML string
	Text string

	Words      int
	Sentences  int
	Paragraphs int
	Links      int

	KeywordHits int

	KeyTakeaways int
	FAQs         int
	Conclusions  int

	YearMentions int

	SemanticKeywords []string
	SemanticFound    int

	BannedHits []PhraseHit
}

// PlainText reduces doc to its visible text with whitespace collapsed. Script and style bodies are dropped.
func PlainText(doc string) (text string) {
	text = markup.VisibleText(doc)
	text = spaceRe.ReplaceAllString(text, " ")
	text = strings.TrimSpace(text)
	return text
}

func (c *Checker) newSample(doc, primaryKeyword string, semanticKeywords []string) (s *Sample) {
	text := PlainText(doc)

	s = &Sample{
		HTML:       doc,
		Text:       text,
		Words:      len(strings.Fields(text)),
		Sentences:  len(sentenceRe.FindAllStringIndex(text, -1)),
		Paragraphs: len(paragraphRe.FindAllStringIndex(doc, -1)),
		Links:      len(linkRe.FindAllStringIndex(doc, -1)),

		KeyTakeaways: len(markup.Locate(doc, markup.KeyTakeaways)),
		FAQs:         len(markup.Locate(doc, markup.FAQ)),
		Conclusions:  len(markup.Locate(doc, markup.Conclusion)),
	}

	keyword := strings.TrimSpace(primaryKeyword)
	if keyword != "" {
		s.KeywordHits = len(policy.PhrasePattern(keyword).FindAllStringIndex(text, -1))
	}

	s.YearMentions = len(policy.PhrasePattern(strconv.Itoa(c.year)).FindAllStringIndex(text, -1))

	// Casers carry state, so each evaluation gets its own.
	fold := cases.Fold()
	folded := fold.String(text)
	for _, kw := range semanticKeywords {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		s.SemanticKeywords = append(s.SemanticKeywords, kw)
		if strings.Contains(folded, fold.String(kw)) {
			s.SemanticFound++
		}
	}

	for _, b := range c.banned {
		n := len(b.re.FindAllStringIndex(text, -1))
		if n > 0 {
			s.BannedHits = append(s.BannedHits, PhraseHit{Phrase: b.phrase, Count: n})
		}
	}

	return s
}

func (s *Sample) matches(re *regexp.Regexp) (n int) {
	n = len(re.FindAllStringIndex(s.HTML, -1))
	return n
}
