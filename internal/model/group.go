package model

// User is the minimal surface of the auth layer this service needs: a row
// for audit stamps and group membership to point at.
type User struct {
	ID    uint    `json:"id" gorm:"primaryKey"`
	Email string  `json:"email" gorm:"type:varchar(100);uniqueIndex;not null"`
	Name  *string `json:"name" gorm:"type:varchar(100)"`
	AuditFields
}

// Group represents an organizational group; groups nest via parent_id
type Group struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Name        string  `json:"name" gorm:"type:varchar(100);uniqueIndex;not null"`
	Description *string `json:"description" gorm:"type:text"`
	ParentID    *uint   `json:"parent_id" gorm:"index"`
	AuditFields
}

// GroupMember associates a user with a group. A user appears at most once
// per group; the pair carries its own role and audit stamps.
type GroupMember struct {
	ID      uint   `json:"id" gorm:"primaryKey"`
	GroupID uint   `json:"group_id" gorm:"not null;index;uniqueIndex:ux_group_members_pair"`
	UserID  uint   `json:"user_id" gorm:"not null;index;uniqueIndex:ux_group_members_pair"`
	Role    string `json:"role" gorm:"type:varchar(50);not null;default:'member'"`
	AuditFields
}
