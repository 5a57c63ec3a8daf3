package model

import "time"

// Release represents a versioned release of a component. Versions are
// unique per component, not globally.
type Release struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	Version     string     `json:"version" gorm:"type:varchar(50);not null;uniqueIndex:ux_releases_version"`
	ComponentID uint       `json:"component_id" gorm:"not null;index;uniqueIndex:ux_releases_version"`
	Notes       *string    `json:"notes" gorm:"type:text"`
	ReleasedAt  *time.Time `json:"released_at"`
	AuditFields
}

// Deployment represents a release rolled out to an environment. Status is
// a computed view over the start/finish timestamps; rows are never removed
// on completion.
type Deployment struct {
	ID            uint       `json:"id" gorm:"primaryKey"`
	ReleaseID     uint       `json:"release_id" gorm:"not null;index"`
	EnvironmentID uint       `json:"environment_id" gorm:"not null;index"`
	StartedAt     *time.Time `json:"started_at"`
	FinishedAt    *time.Time `json:"finished_at"`
	AuditFields
}
