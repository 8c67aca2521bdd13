package domain

import "time"

// AuditFields holds standard audit information for domain entities.
// Timestamps are taken from the system clock service, never the OS clock.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}
