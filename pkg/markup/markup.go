package markup

import (
	"sort"
	"strings"

	"golang.org/x/net/html"
)

// Kind names a structural section of a generated article.
type Kind int

const (
	// KeyTakeaways is the summary box at the top of an article.
	KeyTakeaways Kind = iota
	// FAQ is the frequently-asked-questions block.
	FAQ
	// Conclusion is the closing section introduced by a "Conclusion" heading.
	Conclusion
)

// Marker classes and headings that identify each section kind.
const (
	KeyTakeawaysClass = "key-takeaways-box"
	FAQClass          = "faq-section"
	FAQTitle          = "Frequently Asked Questions"
	ConclusionTitle   = "Conclusion"
)

// String returns the human-readable section name.
func (k Kind) String() (name string) {
	switch k {
	case KeyTakeaways:
		name = "Key Takeaways box"
	case FAQ:
		name = "FAQ section"
	case Conclusion:
		name = "Conclusion section"
	default:
		name = "unknown section"
	}
	return name
}

// Span is a half-open byte range [Start, End) of a document.
type Span struct {
	Start int
	End   int
}

//nolint:gochecknoglobals // HTML void elements never have a closing tag
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true, "hr": true, "img": true,
	"input": true, "link": true, "meta": true, "source": true, "track": true, "wbr": true,
}

// Locate returns the spans of every top-level occurrence of the section kind, in document order. An article
// without any faq-section block falls back to its "Frequently Asked Questions" h2 sections, then h3 sections.
func Locate(doc string, kind Kind) (spans []Span) {
	switch kind {
	case KeyTakeaways:
		spans = LocateClassBlocks(doc, KeyTakeawaysClass)
	case FAQ:
		spans = LocateClassBlocks(doc, FAQClass)
		if len(spans) == 0 {
			spans = LocateHeadingSections(doc, "h2", FAQTitle)
		}
		if len(spans) == 0 {
			spans = LocateHeadingSections(doc, "h3", FAQTitle)
		}
	case Conclusion:
		spans = LocateHeadingSections(doc, "h2", ConclusionTitle)
	}
	return spans
}

// LocateClassBlocks finds elements whose class list contains class and returns each one from its
// opening tag through its matching closing tag. Nesting of same-named elements is tracked, marked
// elements nested inside a marked element belong to the outer span, and an element still open at
// the end of the document is not reported.
func LocateClassBlocks(doc, class string) (spans []Span) {
	var (
		inside bool
		tag    string
		depth  int
		start  int
	)

	scan(doc, func(tok token) {
		if !inside {
			if tok.kind != html.StartTagToken && tok.kind != html.SelfClosingTagToken {
				return
			}
			if !hasClass(tok.class, class) {
				return
			}
			if tok.kind == html.SelfClosingTagToken || voidElements[tok.name] {
				spans = append(spans, Span{Start: tok.start, End: tok.end})
				return
			}
			inside = true
			tag = tok.name
			depth = 1
			start = tok.start
			return
		}

		switch tok.kind {
		case html.StartTagToken:
			if tok.name == tag {
				depth++
			}
		case html.EndTagToken:
			if tok.name == tag {
				depth--
				if depth == 0 {
					spans = append(spans, Span{Start: start, End: tok.end})
					inside = false
				}
			}
		}
	})

	return spans
}

// LocateHeadingSections finds headings of the given tag whose text equals title (case-insensitive,
// whitespace-normalized) and returns each section from the heading up to the next heading of the
// same tag or the end of the document.
func LocateHeadingSections(doc, tag, title string) (spans []Span) {
	var (
		starts    []int
		matches   []bool
		inHeading bool
		text      strings.Builder
	)

	finish := func() {
		matches = append(matches, strings.EqualFold(normalizeSpace(text.String()), title))
		inHeading = false
		text.Reset()
	}

	scan(doc, func(tok token) {
		switch tok.kind {
		case html.StartTagToken:
			if tok.name != tag {
				return
			}
			if inHeading {
				finish()
			}
			starts = append(starts, tok.start)
			inHeading = true
		case html.TextToken:
			if inHeading {
				text.WriteString(tok.text)
			}
		case html.EndTagToken:
			if tok.name == tag && inHeading {
				finish()
			}
		}
	})
	if inHeading {
		finish()
	}

	for i, matched := range matches {
		if !matched {
			continue
		}
		end := len(doc)
		if i+1 < len(starts) {
			end = starts[i+1]
		}
		spans = append(spans, Span{Start: starts[i], End: end})
	}

	return spans
}

// Remove deletes the given spans from doc. Spans may be supplied in any order; overlaps are merged.
func Remove(doc string, spans []Span) (result string) {
	if len(spans) == 0 {
		result = doc
		return result
	}

	sorted := make([]Span, len(spans))
	copy(sorted, spans)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	var b strings.Builder
	b.Grow(len(doc))

	cursor := 0
	for _, s := range sorted {
		start := clamp(s.Start, 0, len(doc))
		end := clamp(s.End, 0, len(doc))
		if start > cursor {
			b.WriteString(doc[cursor:start])
		}
		if end > cursor {
			cursor = end
		}
	}
	b.WriteString(doc[cursor:])

	result = b.String()
	return result
}

// RewriteText passes the raw text of every text node through fn and reassembles the document.
// Tags, attributes, comments and the bodies of script and style elements are copied verbatim.
func RewriteText(doc string, fn func(text string) string) (result string) {
	var b strings.Builder
	b.Grow(len(doc))

	rawBody := false
	end := scan(doc, func(tok token) {
		raw := doc[tok.start:tok.end]

		switch tok.kind {
		case html.TextToken:
			if rawBody {
				b.WriteString(raw)
				return
			}
			b.WriteString(fn(raw))
			return
		case html.StartTagToken:
			rawBody = isRawTextElement(tok.name)
		case html.EndTagToken, html.SelfClosingTagToken:
			rawBody = false
		}

		b.WriteString(raw)
	})

	// The tokenizer stops short of an unterminated trailing tag.
	b.WriteString(doc[end:])

	result = b.String()
	return result
}

// VisibleText returns the decoded text content of doc with a space between text nodes. Comments and the bodies
// of script and style elements are left out.
func VisibleText(doc string) (text string) {
	var b strings.Builder
	b.Grow(len(doc))

	rawBody := false
	scan(doc, func(tok token) {
		switch tok.kind {
		case html.TextToken:
			if !rawBody {
				b.WriteString(tok.text)
				b.WriteByte(' ')
			}
		case html.StartTagToken:
			rawBody = isRawTextElement(tok.name)
		case html.EndTagToken, html.SelfClosingTagToken:
			rawBody = false
		}
	})

	text = b.String()
	return text
}

func isRawTextElement(name string) (raw bool) {
	raw = name == "script" || name == "style"
	return raw
}

type token struct {
	kind  html.TokenType
	name  string
	class string
	text  string
	start int
	end   int
}

// scan tokenizes doc and calls visit for each token with its byte offsets. It returns the offset
// just past the last token.
func scan(doc string, visit func(tok token)) (offset int) {
	z := html.NewTokenizer(strings.NewReader(doc))

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			return offset
		}

		// Raw must be measured before TagName and Text touch the buffer.
		n := len(z.Raw())
		tok := token{kind: tt, start: offset, end: offset + n}
		offset += n

		switch tt {
		case html.StartTagToken, html.SelfClosingTagToken, html.EndTagToken:
			name, hasAttr := z.TagName()
			tok.name = string(name)
			for hasAttr {
				var key, val []byte
				key, val, hasAttr = z.TagAttr()
				if string(key) == "class" {
					tok.class = string(val)
				}
			}
		case html.TextToken:
			tok.text = string(z.Text())
		}

		visit(tok)
	}
}

func hasClass(attr, class string) (ok bool) {
	for _, c := range strings.Fields(attr) {
		if strings.EqualFold(c, class) {
			ok = true
			return ok
		}
	}
	return ok
}

func normalizeSpace(s string) (out string) {
	out = strings.Join(strings.Fields(s), " ")
	return out
}

func clamp(v, lo, hi int) (out int) {
	out = v
	if out < lo {
		out = lo
	}
	if out > hi {
		out = hi
	}
	return out
}
