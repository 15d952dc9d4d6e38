package statistic

import (
	"activitybot/internal/models"
	"fmt"
	json "github.com/goccy/go-json"
	"os"
	"path/filepath"
	"strings"
	"time"
)

func encodeDocument(doc *models.Document) ([]byte, error) {
	data, err := json.MarshalIndent(models.ToStorage(doc), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	return data, nil
}

func decodeDocument(data []byte) (*models.Document, error) {
	var storage models.Storage
	if err := json.Unmarshal(data, &storage); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	return models.FromStorage(&storage), nil
}

// writeFile replaces fileName with data through a synced temp file in the
// same directory, creating the directory when needed.
func writeFile(fileName string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(fileName), 0755); err != nil {
		return err
	}

	tmpFile := fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, fileName)
}

const stampLayout = "2006-01-02T15:04:05.000Z07:00"

// fileStamp renders t for use in file names: UTC RFC3339 with milliseconds,
// ':' and '.' replaced by '-'.
func fileStamp(t time.Time) string {
	return strings.NewReplacer(":", "-", ".", "-").Replace(t.UTC().Format(stampLayout))
}
