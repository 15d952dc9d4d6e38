package statistic

import (
	"activitybot/internal/models"
	"activitybot/internal/providers"
	"activitybot/internal/statistic/interfaces"
	"activitybot/internal/structures"
	"os"
	"time"
)

// FileManager is the JSON file backing the activity document.
type FileManager struct {
	fileName string
	metrics  providers.MetricsProviderInterface
	logger   providers.Logger
}

func NewFileManager(conf *structures.Config, metrics providers.MetricsProviderInterface, logger providers.Logger) *FileManager {
	return &FileManager{
		fileName: conf.Persistence.FilePath,
		metrics:  metrics,
		logger:   logger,
	}
}

var _ interfaces.StorageInterface = (*FileManager)(nil)

func (f *FileManager) FileName() string {
	return f.fileName
}

func (f *FileManager) Save(doc *models.Document) error {
	start := time.Now()

	data, err := encodeDocument(doc)
	if err != nil {
		return err
	}
	if err = writeFile(f.fileName, data); err != nil {
		return err
	}

	f.metrics.ObservePersistenceDuration(time.Since(start))
	f.metrics.SetTrackedTotals(len(doc.Messages), len(doc.DailyStats), len(doc.WeeklyStats))
	return nil
}

func (f *FileManager) Load() *models.Document {
	data, err := os.ReadFile(f.fileName)
	if err != nil {
		if os.IsNotExist(err) {
			f.logger.Infof(providers.TypeApp, "No activity data at %s, starting fresh", f.fileName)
		} else {
			f.logger.Errorf(providers.TypeApp, "Error while reading activity data: %s", err)
		}
		return models.NewDocument(time.Now().UTC())
	}

	doc, err := decodeDocument(data)
	if err != nil {
		f.logger.Errorf(providers.TypeApp, "Activity data at %s is unreadable, starting fresh: %s", f.fileName, err)
		return models.NewDocument(time.Now().UTC())
	}

	f.metrics.SetTrackedTotals(len(doc.Messages), len(doc.DailyStats), len(doc.WeeklyStats))
	f.logger.Infof(providers.TypeApp, "Loaded activity data for %d users from %s", len(doc.Messages), f.fileName)
	return doc
}
