// Package qualitytest builds synthetic generated articles with known measurements for tests.
package qualitytest

import (
	"fmt"
	"strconv"
	"strings"
)

// WordsPerSentence is the length of every generated body sentence.
const WordsPerSentence = 15

// SentencesPerParagraph is the number of sentences in every generated paragraph.
const SentencesPerParagraph = 3

//nolint:gochecknoglobals // Filler vocabulary, free of banned phrases, keywords and numerals
var vocabulary = []string{
	"runners", "often", "compare", "grip", "cushioning", "weight", "durability", "before",
	"buying", "new", "gear", "for", "long", "mountain", "outings", "and", "choose", "stable",
	"comfortable", "models", "that", "suit", "their", "stride",
}

//nolint:gochecknoglobals // Key takeaways list items
var takeaways = []string{
	"Pick grip for wet rock",
	"Match cushioning to distance",
	"Check durability after long outings",
	"Test fit before buying",
	"Rotate pairs for stable wear",
}

//nolint:gochecknoglobals // Body section headings
var sectionTitles = []string{
	"Grip And Traction", "Cushioning And Comfort", "Durability Over Time", "Fit And Sizing",
	"Weight And Speed", "Care And Storage",
}

// SemanticKeywords are topical terms every generated article contains.
func SemanticKeywords() (keywords []string) {
	keywords = []string{"cushioning", "grip", "durability", "stable"}
	return keywords
}

// Article describes the shape of a synthetic article.
type Article struct {
	Keyword              string
	KeywordUses          int
	Year                 int
	YearMentions         int
	KeyTakeawaysBoxes    int
	FAQBlocks            int
	ConclusionSections   int
	BodySections         int
	ParagraphsPerSection int
	Tables               int
	Links                int
	References           bool
	// SwapWord replaces the first word of the first plain sentence when set.
	SwapWord string
}

// Passing returns an article that satisfies every check except keyword density: about 2600 words,
// the keyword six times, one of each structural block, five h2 headings, ten links, three year
// mentions, 15 words per sentence and three sentences per paragraph.
func Passing(year int) (a Article) {
	a = Article{
		Keyword:              "trail running shoes",
		KeywordUses:          6,
		Year:                 year,
		YearMentions:         3,
		KeyTakeawaysBoxes:    1,
		FAQBlocks:            1,
		ConclusionSections:   1,
		BodySections:         3,
		ParagraphsPerSection: 16,
		Tables:               1,
		Links:                10,
		References:           true,
	}
	return a
}

// Paragraphs returns the number of paragraphs the article renders.
func (a Article) Paragraphs() (n int) {
	n = a.BodySections*a.ParagraphsPerSection + 4*a.FAQBlocks + 4*a.ConclusionSections
	return n
}

// HTML renders the article.
func (a Article) HTML() (doc string) {
	g := &generator{article: a, total: a.Paragraphs() * SentencesPerParagraph, swap: a.SwapWord}
	g.keywordAt = spread(a.KeywordUses, g.total, 1)
	g.yearAt = spread(a.YearMentions, g.total, 2)

	var b strings.Builder

	if a.KeyTakeawaysBoxes > 0 {
		b.WriteString(keyTakeawaysBox())
	}

	for s := 0; s < a.BodySections; s++ {
		b.WriteString("<h2>" + sectionTitles[s%len(sectionTitles)] + "</h2>\n")
		for p := 0; p < a.ParagraphsPerSection; p++ {
			b.WriteString(g.paragraph())
		}
		if s == 0 {
			for t := 0; t < a.Tables; t++ {
				b.WriteString("<table><tr><th>Model</th><th>Weight</th></tr><tr><td>Alpha</td><td>280 grams</td></tr></table>\n")
			}
			// Duplicate boxes land after the first section, where generators tend to repeat them.
			for k := 1; k < a.KeyTakeawaysBoxes; k++ {
				b.WriteString(keyTakeawaysBox())
			}
		}
	}

	for f := 0; f < a.FAQBlocks; f++ {
		b.WriteString(`<div class="faq-section">` + "\n<h2>Frequently Asked Questions</h2>\n")
		for p := 0; p < 4; p++ {
			b.WriteString(g.paragraph())
		}
		b.WriteString("</div>\n")
	}

	for c := 0; c < a.ConclusionSections; c++ {
		b.WriteString("<h2>Conclusion</h2>\n")
		for p := 0; p < 4; p++ {
			b.WriteString(g.paragraph())
		}
	}

	if a.References {
		b.WriteString(`<div class="references-section">` + "\n<h3>References</h3>\n")
	}
	b.WriteString("<ul>\n")
	for l := 1; l <= a.Links; l++ {
		b.WriteString(fmt.Sprintf(`<li><a href="/guides/related-guide-%d">Related guide %d</a></li>`+"\n", l, l))
	}
	b.WriteString("</ul>\n")
	if a.References {
		b.WriteString("</div>\n")
	}

	doc = b.String()
	return doc
}

func keyTakeawaysBox() (box string) {
	var b strings.Builder
	b.WriteString(`<div class="key-takeaways-box">` + "\n<h3>Key Takeaways</h3>\n<ul>\n")
	for _, t := range takeaways {
		b.WriteString("<li>" + t + "</li>\n")
	}
	b.WriteString("</ul>\n</div>\n")
	box = b.String()
	return box
}

type generator struct {
	article   Article
	total     int
	sentence  int
	word      int
	keywordAt map[int]bool
	yearAt    map[int]bool
	swap      string
}

func (g *generator) paragraph() (p string) {
	sentences := make([]string, 0, SentencesPerParagraph)
	for i := 0; i < SentencesPerParagraph; i++ {
		sentences = append(sentences, g.next())
	}
	p = "<p>" + strings.Join(sentences, " ") + "</p>\n"
	return p
}

func (g *generator) next() (sentence string) {
	var parts []string
	if g.yearAt[g.sentence] {
		parts = append(parts, "In", strconv.Itoa(g.article.Year))
	}
	if g.keywordAt[g.sentence] {
		parts = append(parts, strings.Fields(g.article.Keyword)...)
	}
	g.sentence++

	plain := len(parts) == 0
	for len(parts) < WordsPerSentence {
		parts = append(parts, vocabulary[g.word%len(vocabulary)])
		g.word++
	}

	if plain && g.swap != "" {
		parts[0] = g.swap
		g.swap = ""
	}

	sentence = strings.Join(parts, " ") + "."
	return sentence
}

// spread picks n sentence indexes evenly across total, shifted by offset.
func spread(n, total, offset int) (at map[int]bool) {
	at = make(map[int]bool, n)
	for k := 0; k < n; k++ {
		at[k*total/n+offset] = true
	}
	return at
}
