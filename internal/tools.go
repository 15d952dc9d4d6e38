package internal

import (
	"activitybot/internal/providers"
	"activitybot/internal/services"
	"activitybot/internal/statistic/interfaces"
	"activitybot/internal/structures"
)

// Tools bundles what the one-shot maintenance commands need. The service is
// restored from the data file before it is handed out.
type Tools struct {
	Config     *structures.Config
	Logger     providers.Logger
	Service    services.ActivityServiceInterface
	Storage    interfaces.StorageInterface
	Archiver   interfaces.ArchiverInterface
	compressor interfaces.CompressorInterface
}

func NewTools(conf *structures.Config, logger providers.Logger, service services.ActivityServiceInterface, storage interfaces.StorageInterface, archiver interfaces.ArchiverInterface, compressor interfaces.CompressorInterface) *Tools {
	service.Restore(storage.Load())
	return &Tools{
		Config:     conf,
		Logger:     logger,
		Service:    service,
		Storage:    storage,
		Archiver:   archiver,
		compressor: compressor,
	}
}

func (t *Tools) Close() {
	t.compressor.Close()
	t.Logger.Close()
}
