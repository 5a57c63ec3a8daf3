package model

// Lifecycle represents a named lifecycle (e.g. "default", "data products")
type Lifecycle struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Name        string  `json:"name" gorm:"type:varchar(100);uniqueIndex;not null"`
	Description *string `json:"description" gorm:"type:text"`
	AuditFields
}

// LifecyclePhase represents one ordered phase within a lifecycle.
// Phase names are unique per lifecycle, not globally.
type LifecyclePhase struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Name        string  `json:"name" gorm:"type:varchar(100);not null;uniqueIndex:ux_lifecycle_phases_name"`
	LifecycleID uint    `json:"lifecycle_id" gorm:"not null;index;uniqueIndex:ux_lifecycle_phases_name"`
	Description *string `json:"description" gorm:"type:text"`
	Position    *int64  `json:"position"`
	AuditFields
}
