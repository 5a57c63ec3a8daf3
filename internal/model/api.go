package model

import (
	"encoding/json"
	"time"
)

// Api represents a catalogued API
type Api struct {
	ID                    uint            `json:"id" gorm:"primaryKey"`
	Name                  string          `json:"name" gorm:"type:varchar(255);uniqueIndex;not null"`
	DisplayName           *string         `json:"display_name" gorm:"type:varchar(255)"`
	Description           *string         `json:"description" gorm:"type:text"`
	URL                   *string         `json:"url" gorm:"type:varchar(255)"`
	Version               *string         `json:"version" gorm:"type:varchar(50)"`
	TypeID                *uint           `json:"type_id" gorm:"index"`
	StatusID              *uint           `json:"status_id" gorm:"index"`
	LifecycleID           *uint           `json:"lifecycle_id" gorm:"index"`
	DocumentSpecification json.RawMessage `json:"document_specification" gorm:"type:jsonb"`
	// DeprecatedAt is a manual flag set by operators, not a soft delete.
	DeprecatedAt *time.Time `json:"deprecated_at"`
	AuditFields
}

// ApiStatus represents the lifecycle status reference data for APIs
type ApiStatus struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Name        string  `json:"name" gorm:"type:varchar(50);uniqueIndex;not null"`
	Description *string `json:"description" gorm:"type:text"`
	AuditFields
}

// ApiType represents the kind of API (rest, grpc, graphql, ...)
type ApiType struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Name        string  `json:"name" gorm:"type:varchar(50);uniqueIndex;not null"`
	Description *string `json:"description" gorm:"type:text"`
	AuditFields
}
