package document

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pkg/errors"
)

// ExtractFragment returns the inner markup of the first element matching selector, or doc when selector is empty.
// The fragment is re-serialized by the parser, so byte offsets do not carry over to the source page.
func ExtractFragment(doc, selector string) (fragment string, err error) {
	selector = strings.TrimSpace(selector)
	if selector == "" {
		fragment = doc
		return fragment, err
	}

	var parsed *goquery.Document
	parsed, err = goquery.NewDocumentFromReader(strings.NewReader(doc))
	if err != nil {
		err = errors.Wrap(err, "failed to parse document")
		return fragment, err
	}

	selection := parsed.Find(selector)
	if selection.Length() == 0 {
		err = errors.Errorf("no element matches selector %q", selector)
		return fragment, err
	}

	fragment, err = selection.First().Html()
	if err != nil {
		err = errors.Wrapf(err, "failed to render fragment for selector %q", selector)
		return fragment, err
	}

	return fragment, err
}
