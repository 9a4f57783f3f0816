package renderer

import (
	"encoding/json"
	"io"

	"github.com/nikogura/content-qa/pkg/fixer"
	"github.com/nikogura/content-qa/pkg/quality"
	"github.com/pkg/errors"
)

// RenderJSON writes the report as indented JSON.
func RenderJSON(w io.Writer, report quality.Report) (err error) {
	err = writeJSON(w, report)
	if err != nil {
		err = errors.Wrap(err, "failed to write JSON report")
		return err
	}
	return err
}

func renderChangesJSON(w io.Writer, changes []fixer.FixRecord) (err error) {
	err = renderFixJSON(w, changes, nil)
	return err
}

// renderFixJSON writes one object holding the fix log and, when given, the re-check report.
func renderFixJSON(w io.Writer, changes []fixer.FixRecord, report *quality.Report) (err error) {
	if changes == nil {
		changes = []fixer.FixRecord{}
	}

	payload := struct {
		Changes []fixer.FixRecord `json:"changes"`
		Report  *quality.Report   `json:"report,omitempty"`
	}{Changes: changes, Report: report}

	err = writeJSON(w, payload)
	if err != nil {
		err = errors.Wrap(err, "failed to write JSON fix log")
		return err
	}
	return err
}

func writeJSON(w io.Writer, v any) (err error) {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	err = encoder.Encode(v)
	return err
}
