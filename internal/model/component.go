package model

import "encoding/json"

// Component represents a deployable software component in the catalog
type Component struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	Name        string          `json:"name" gorm:"type:varchar(255);uniqueIndex;not null"`
	Description *string         `json:"description" gorm:"type:text"`
	URL         *string         `json:"url" gorm:"type:varchar(255)"`
	CategoryID  *uint           `json:"category_id" gorm:"index"`
	LifecycleID *uint           `json:"lifecycle_id" gorm:"index"`
	Tags        json.RawMessage `json:"tags" gorm:"type:jsonb"`
	AuditFields
}
