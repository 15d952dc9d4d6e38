package interfaces

import "activitybot/internal/models"

// StorageInterface is the backing store of the activity document.
type StorageInterface interface {
	// Load never fails: a missing or unreadable file yields an empty document.
	Load() *models.Document
	Save(doc *models.Document) error
}
