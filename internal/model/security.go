package model

import "time"

// Credential represents a stored secret. The secret payload is encrypted
// at rest and never re-emitted in any read response; secret and
// secret_ciphertext sit in the entity's hidden set, stripped at the
// output-shaping boundary.
type Credential struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Name        string  `json:"name" gorm:"type:varchar(100);uniqueIndex;not null"`
	Type        string  `json:"type" gorm:"type:varchar(50);not null"`
	Description *string `json:"description" gorm:"type:text"`
	Ciphertext  []byte  `json:"secret_ciphertext" gorm:"column:secret_ciphertext"`
	AuditFields
}

// CiServer represents a CI server that may operate with a linked credential
type CiServer struct {
	ID           uint    `json:"id" gorm:"primaryKey"`
	Name         string  `json:"name" gorm:"type:varchar(100);uniqueIndex;not null"`
	URL          string  `json:"url" gorm:"type:varchar(255);not null"`
	CredentialID *uint   `json:"credential_id" gorm:"index"`
	Description  *string `json:"description" gorm:"type:text"`
	AuditFields
}

// ServiceAccountToken represents an issued token. The plaintext is revealed
// exactly once in the create response; only a bcrypt hash is stored. Expiry
// is a computed view over expires_at, rows are never deleted on expiry.
type ServiceAccountToken struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	Name      string     `json:"name" gorm:"type:varchar(100);uniqueIndex;not null"`
	TokenHash string     `json:"token_hash" gorm:"type:varchar(255);column:token_hash"`
	ExpiresAt *time.Time `json:"expires_at"`
	AuditFields
}
