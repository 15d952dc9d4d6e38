package statistic

import (
	"activitybot/internal/models"
	"activitybot/internal/providers"
	"activitybot/internal/services"
	"activitybot/internal/statistic/interfaces"
	"activitybot/internal/structures"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const (
	FormatJSON = "json"
	FormatCSV  = "csv"

	backupPrefix  = "backup-"
	exportPrefix  = "export-"
	compressedExt = ".zst"
)

// Archiver writes timestamped backups and exports of the activity document.
type Archiver struct {
	backupDir  string
	exportDir  string
	compress   bool
	service    services.ActivityServiceInterface
	compressor interfaces.CompressorInterface
	logger     providers.Logger
	now        func() time.Time
}

func NewArchiver(conf *structures.Config, service services.ActivityServiceInterface, compressor interfaces.CompressorInterface, logger providers.Logger) interfaces.ArchiverInterface {
	return &Archiver{
		backupDir:  conf.Backup.Dir,
		exportDir:  conf.Export.Dir,
		compress:   conf.Backup.Compress,
		service:    service,
		compressor: compressor,
		logger:     logger,
		now:        time.Now,
	}
}

func (a *Archiver) Backup() (string, error) {
	data, err := encodeDocument(a.service.Snapshot())
	if err != nil {
		return "", err
	}

	fileName := filepath.Join(a.backupDir, backupPrefix+fileStamp(a.now())+"."+FormatJSON)
	if a.compress {
		if data, err = a.compressor.Compress(data); err != nil {
			return "", fmt.Errorf("failed to compress backup: %w", err)
		}
		fileName += compressedExt
	}

	if err = writeFile(fileName, data); err != nil {
		return "", fmt.Errorf("failed to write backup: %w", err)
	}
	a.logger.Infof(providers.TypeApp, "Backup created: %s", fileName)
	return fileName, nil
}

func (a *Archiver) Export(format string) (string, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = FormatJSON
	}

	var data []byte
	switch format {
	case FormatJSON:
		encoded, err := encodeDocument(a.service.Snapshot())
		if err != nil {
			return "", err
		}
		data = encoded
	case FormatCSV:
		var buf bytes.Buffer
		if err := a.service.ExportCSV(&buf); err != nil {
			return "", err
		}
		data = buf.Bytes()
	default:
		return "", fmt.Errorf("%w: %q", services.ErrUnsupportedFormat, format)
	}

	fileName := filepath.Join(a.exportDir, exportPrefix+fileStamp(a.now())+"."+format)
	if err := writeFile(fileName, data); err != nil {
		return "", fmt.Errorf("failed to write export: %w", err)
	}
	a.logger.Infof(providers.TypeApp, "Data exported: %s", fileName)
	return fileName, nil
}

// Backups lists the backup files, oldest first.
func (a *Archiver) Backups() ([]string, error) {
	var files []string
	for _, pattern := range []string{"*.json", "*.json" + compressedExt} {
		matches, err := filepath.Glob(filepath.Join(a.backupDir, backupPrefix+pattern))
		if err != nil {
			return nil, err
		}
		files = append(files, matches...)
	}
	sort.Strings(files)
	return files, nil
}

// ReadBackup decodes a backup file, compressed or not.
func (a *Archiver) ReadBackup(fileName string) (*models.Document, error) {
	data, err := os.ReadFile(fileName)
	if err != nil {
		return nil, err
	}
	if strings.HasSuffix(fileName, compressedExt) {
		if data, err = a.compressor.Decompress(data); err != nil {
			return nil, fmt.Errorf("failed to decompress %s: %w", fileName, err)
		}
	}
	return decodeDocument(data)
}
