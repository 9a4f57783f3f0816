package document

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/nikogura/content-qa/pkg/quality"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// LoadKeywords reads a keyword list. YAML and JSON files hold a sequence of strings; any other file holds one
// keyword per line, with blank lines and lines starting with '#' ignored.
func LoadKeywords(path string) (keywords []string, err error) {
	var data []byte
	data, err = os.ReadFile(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to read keyword file: %s", path)
		return keywords, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		// JSON is a subset of YAML.
		err = yaml.Unmarshal(data, &keywords)
		if err != nil {
			err = errors.Wrapf(err, "failed to parse keyword file: %s", path)
			return keywords, err
		}
	default:
		scanner := bufio.NewScanner(strings.NewReader(string(data)))
		for scanner.Scan() {
			keywords = append(keywords, scanner.Text())
		}
		err = scanner.Err()
		if err != nil {
			err = errors.Wrapf(err, "failed to scan keyword file: %s", path)
			return keywords, err
		}
	}

	keywords = cleanKeywords(keywords)
	return keywords, err
}

// SplitKeywords splits a comma-separated flag value into keywords.
func SplitKeywords(value string) (keywords []string) {
	keywords = cleanKeywords(strings.Split(value, ","))
	return keywords
}

// MergeKeywords concatenates keyword lists, keeping the first spelling of each case-insensitive duplicate.
func MergeKeywords(lists ...[]string) (keywords []string) {
	var all []string
	for _, list := range lists {
		all = append(all, list...)
	}
	keywords = cleanKeywords(all)
	return keywords
}

// LoadLinkCandidates reads a YAML or JSON sequence of {title, slug} pages the article may link to.
func LoadLinkCandidates(path string) (candidates []quality.LinkCandidate, err error) {
	var data []byte
	data, err = os.ReadFile(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to read link candidates file: %s", path)
		return candidates, err
	}

	err = yaml.Unmarshal(data, &candidates)
	if err != nil {
		err = errors.Wrapf(err, "failed to parse link candidates file: %s", path)
		return candidates, err
	}

	for i, c := range candidates {
		if strings.TrimSpace(c.Slug) == "" {
			err = errors.Errorf("link candidate %d (%q) has no slug", i, c.Title)
			return candidates, err
		}
	}

	return candidates, err
}

// cleanKeywords trims entries and drops blanks, comments and case-insensitive duplicates, keeping order.
func cleanKeywords(raw []string) (keywords []string) {
	seen := make(map[string]bool, len(raw))
	for _, kw := range raw {
		kw = strings.TrimSpace(kw)
		if kw == "" || strings.HasPrefix(kw, "#") {
			continue
		}
		key := strings.ToLower(kw)
		if seen[key] {
			continue
		}
		seen[key] = true
		keywords = append(keywords, kw)
	}
	return keywords
}
