package renderer

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// WriteDocument writes content to outputPath, creating parent directories. The file is written beside the
// target and renamed into place, so an interrupted write never leaves a truncated document.
func WriteDocument(content, outputPath string) (err error) {
	outputDir := filepath.Dir(outputPath)
	err = os.MkdirAll(outputDir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create output directory: %s", outputDir)
		return err
	}

	var tmp *os.File
	tmp, err = os.CreateTemp(outputDir, "."+filepath.Base(outputPath)+".*")
	if err != nil {
		err = errors.Wrapf(err, "failed to create temporary file in: %s", outputDir)
		return err
	}
	tmpPath := tmp.Name()

	_, err = tmp.WriteString(content)
	if err != nil {
		_ = tmp.Close()
		cleanup(tmpPath)
		err = errors.Wrapf(err, "failed to write document: %s", outputPath)
		return err
	}

	err = tmp.Close()
	if err != nil {
		cleanup(tmpPath)
		err = errors.Wrapf(err, "failed to close document: %s", outputPath)
		return err
	}

	err = os.Rename(tmpPath, outputPath)
	if err != nil {
		cleanup(tmpPath)
		err = errors.Wrapf(err, "failed to move document into place: %s", outputPath)
		return err
	}

	return err
}

// cleanup removes a temporary file left behind by a failed write.
func cleanup(path string) {
	_ = os.Remove(path)
}
