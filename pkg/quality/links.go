package quality

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

//nolint:gochecknoglobals // Anchor href extraction
var hrefRe = regexp.MustCompile(`(?i)\bhref\s*=\s*["']([^"']*)["']`)

const (
	anchorWords        = 4
	anchorMinWordRunes = 4
)

// SuggestInternalLinks proposes links to candidate pages whose title-derived anchor text already
// appears in the article body and which the article does not yet link to. At most limit
// suggestions are returned.
func SuggestInternalLinks(doc string, candidates []LinkCandidate, limit int) (suggestions []LinkSuggestion) {
	if len(candidates) == 0 || limit <= 0 {
		return suggestions
	}

	body := strings.ToLower(PlainText(doc))
	linked := linkedPaths(doc)

	for _, cand := range candidates {
		slug := strings.Trim(strings.TrimSpace(cand.Slug), "/")
		if cand.Title == "" || slug == "" {
			continue
		}

		target := "/" + slug
		key := strings.ToLower(target[strings.LastIndex(target, "/"):])
		if linked[key] {
			continue
		}

		anchor := anchorText(cand.Title)
		if anchor == "" || !strings.Contains(body, strings.ToLower(anchor)) {
			continue
		}

		suggestions = append(suggestions, LinkSuggestion{
			AnchorText: anchor,
			TargetSlug: target,
			Context:    "Body reference to related guide",
		})
		linked[key] = true

		if len(suggestions) >= limit {
			break
		}
	}

	return suggestions
}

// anchorText takes the first few substantial words of a page title.
func anchorText(title string) (anchor string) {
	var words []string
	for _, w := range strings.Fields(title) {
		w = strings.TrimFunc(w, func(r rune) bool { return !unicode.IsLetter(r) && !unicode.IsDigit(r) })
		if utf8.RuneCountInString(w) < anchorMinWordRunes {
			continue
		}
		words = append(words, w)
		if len(words) == anchorWords {
			break
		}
	}
	anchor = strings.Join(words, " ")
	return anchor
}

// linkedPaths collects the lower-cased paths the document already links to, keyed by their last path segment as "/segment".
func linkedPaths(doc string) (paths map[string]bool) {
	paths = make(map[string]bool)
	for _, m := range hrefRe.FindAllStringSubmatch(doc, -1) {
		href := m[1]
		if i := strings.IndexAny(href, "?#"); i >= 0 {
			href = href[:i]
		}
		href = strings.TrimRight(strings.ToLower(href), "/")
		if i := strings.LastIndex(href, "/"); i >= 0 {
			paths[href[i:]] = true
		}
	}
	return paths
}
