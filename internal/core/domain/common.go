package domain

import "time"

// AuditFields records who created and last changed a record, and when.
// User ids are the subject of the caller's token or the service user of an API key.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}
