package model

// BusinessDomain represents a business domain; domains form a tree via
// parent_id. Cycle prevention happens at write time in the handler.
type BusinessDomain struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Name        string  `json:"name" gorm:"type:varchar(100);uniqueIndex;not null"`
	Description *string `json:"description" gorm:"type:text"`
	ParentID    *uint   `json:"parent_id" gorm:"index"`
	AuditFields
}

// BusinessCapability represents a capability within a business domain
type BusinessCapability struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Name        string  `json:"name" gorm:"type:varchar(100);uniqueIndex;not null"`
	Description *string `json:"description" gorm:"type:text"`
	DomainID    *uint   `json:"domain_id" gorm:"index"`
	ParentID    *uint   `json:"parent_id" gorm:"index"`
	AuditFields
}

// Category represents a component category tree
type Category struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Name        string  `json:"name" gorm:"type:varchar(100);uniqueIndex;not null"`
	Description *string `json:"description" gorm:"type:text"`
	ParentID    *uint   `json:"parent_id" gorm:"index"`
	AuditFields
}
