package model

// Environment represents a deployment environment (dev, staging, prod, ...)
type Environment struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Name        string  `json:"name" gorm:"type:varchar(50);uniqueIndex;not null"`
	Description *string `json:"description" gorm:"type:text"`
	URL         *string `json:"url" gorm:"type:varchar(255)"`
	Position    *int64  `json:"position"`
	AuditFields
}

// Cluster represents a compute cluster within an environment
type Cluster struct {
	ID            uint    `json:"id" gorm:"primaryKey"`
	Name          string  `json:"name" gorm:"type:varchar(100);uniqueIndex;not null"`
	Description   *string `json:"description" gorm:"type:text"`
	EnvironmentID *uint   `json:"environment_id" gorm:"index"`
	URL           *string `json:"url" gorm:"type:varchar(255)"`
	AuditFields
}

// Node represents a machine that can belong to clusters
type Node struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Name        string  `json:"name" gorm:"type:varchar(100);uniqueIndex;not null"`
	Description *string `json:"description" gorm:"type:text"`
	Address     *string `json:"address" gorm:"type:varchar(255)"`
	AuditFields
}

// ClusterNode associates a node with a cluster. A node appears at most
// once per cluster.
type ClusterNode struct {
	ID        uint    `json:"id" gorm:"primaryKey"`
	ClusterID uint    `json:"cluster_id" gorm:"not null;index;uniqueIndex:ux_cluster_nodes_pair"`
	NodeID    uint    `json:"node_id" gorm:"not null;index;uniqueIndex:ux_cluster_nodes_pair"`
	Role      *string `json:"role" gorm:"type:varchar(50)"`
	AuditFields
}
