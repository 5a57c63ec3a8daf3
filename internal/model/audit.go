package model

import "time"

// AuditFields carries the provenance and timestamp columns present on every
// catalog table. created_by/updated_by are set by the pipeline's stamper,
// never accepted from request bodies.
type AuditFields struct {
	CreatedBy *uint     `json:"created_by"`
	UpdatedBy *uint     `json:"updated_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
