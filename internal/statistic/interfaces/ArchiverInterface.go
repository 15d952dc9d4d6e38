package interfaces

import "activitybot/internal/models"

type ArchiverInterface interface {
	// Backup writes the full document to the backup directory and returns
	// the file path.
	Backup() (string, error)
	// Export writes the document as "json" or "csv" to the export directory
	// and returns the file path.
	Export(format string) (string, error)
	Backups() ([]string, error)
	ReadBackup(fileName string) (*models.Document, error)
}
