package registry

import (
	"github.com/angelcamposm/atlas-catalog-sub002/internal/catalog/secret"
	"github.com/angelcamposm/atlas-catalog-sub002/internal/catalog/validation"
	"github.com/angelcamposm/atlas-catalog-sub002/internal/model"
)

// New builds the registry of every catalog entity. The encryptor backs the
// credential secret hooks.
func New(enc *secret.Encryptor) *Registry {
	defs := []*Definition{
		// --- catalog ---
		{
			Area:       "catalog",
			Collection: "apis",
			Table:      "apis",
			Model:      &model.Api{},
			Rules: []validation.Rule{
				{Field: "name", Kind: validation.String, Required: true, MaxLen: 255, Unique: true},
				{Field: "display_name", Kind: validation.String, MaxLen: 255},
				{Field: "description", Kind: validation.String},
				{Field: "url", Kind: validation.String, MaxLen: 255},
				{Field: "version", Kind: validation.String, MaxLen: 50},
				{Field: "type_id", Kind: validation.Int, References: "api_types"},
				{Field: "status_id", Kind: validation.Int, References: "api_statuses"},
				{Field: "lifecycle_id", Kind: validation.Int, References: "lifecycles"},
				{Field: "document_specification", Kind: validation.JSON},
				{Field: "deprecated_at", Kind: validation.Time},
			},
		},
		{
			Area:       "catalog",
			Collection: "api_statuses",
			Table:      "api_statuses",
			Model:      &model.ApiStatus{},
			Rules: []validation.Rule{
				{Field: "name", Kind: validation.String, Required: true, MaxLen: 50, Unique: true},
				{Field: "description", Kind: validation.String},
			},
			ReferencedBy: []Reference{{Table: "apis", Column: "status_id"}},
		},
		{
			Area:       "catalog",
			Collection: "api_types",
			Table:      "api_types",
			Model:      &model.ApiType{},
			Rules: []validation.Rule{
				{Field: "name", Kind: validation.String, Required: true, MaxLen: 50, Unique: true},
				{Field: "description", Kind: validation.String},
			},
			ReferencedBy: []Reference{{Table: "apis", Column: "type_id"}},
		},
		{
			Area:       "catalog",
			Collection: "components",
			Table:      "components",
			Model:      &model.Component{},
			Rules: []validation.Rule{
				{Field: "name", Kind: validation.String, Required: true, MaxLen: 255, Unique: true},
				{Field: "description", Kind: validation.String},
				{Field: "url", Kind: validation.String, MaxLen: 255},
				{Field: "category_id", Kind: validation.Int, References: "categories"},
				{Field: "lifecycle_id", Kind: validation.Int, References: "lifecycles"},
				{Field: "tags", Kind: validation.JSON},
			},
			ReferencedBy: []Reference{{Table: "releases", Column: "component_id"}},
		},
		{
			Area:       "catalog",
			Collection: "lifecycles",
			Table:      "lifecycles",
			Model:      &model.Lifecycle{},
			Rules: []validation.Rule{
				{Field: "name", Kind: validation.String, Required: true, MaxLen: 100, Unique: true},
				{Field: "description", Kind: validation.String},
			},
			ReferencedBy: []Reference{
				{Table: "apis", Column: "lifecycle_id"},
				{Table: "components", Column: "lifecycle_id"},
				{Table: "lifecycle_phases", Column: "lifecycle_id"},
			},
		},
		{
			Area:       "catalog",
			Collection: "lifecycle_phases",
			Table:      "lifecycle_phases",
			Model:      &model.LifecyclePhase{},
			Rules: []validation.Rule{
				{Field: "name", Kind: validation.String, Required: true, MaxLen: 100, Unique: true, Scope: []string{"lifecycle_id"}},
				{Field: "lifecycle_id", Kind: validation.Int, Required: true, References: "lifecycles"},
				{Field: "description", Kind: validation.String},
				{Field: "position", Kind: validation.Int, Min: validation.Limit(0)},
			},
			DefaultOrder: "position ASC, id ASC",
		},

		// --- architecture ---
		{
			Area:         "architecture",
			Collection:   "business_domains",
			Table:        "business_domains",
			Model:        &model.BusinessDomain{},
			Hierarchical: true,
			Rules: []validation.Rule{
				{Field: "name", Kind: validation.String, Required: true, MaxLen: 100, Unique: true},
				{Field: "description", Kind: validation.String},
				{Field: "parent_id", Kind: validation.Int, References: "business_domains"},
			},
			ReferencedBy: []Reference{
				{Table: "business_domains", Column: "parent_id"},
				{Table: "business_capabilities", Column: "domain_id"},
			},
		},
		{
			Area:         "architecture",
			Collection:   "business_capabilities",
			Table:        "business_capabilities",
			Model:        &model.BusinessCapability{},
			Hierarchical: true,
			Rules: []validation.Rule{
				{Field: "name", Kind: validation.String, Required: true, MaxLen: 100, Unique: true},
				{Field: "description", Kind: validation.String},
				{Field: "domain_id", Kind: validation.Int, References: "business_domains"},
				{Field: "parent_id", Kind: validation.Int, References: "business_capabilities"},
			},
			ReferencedBy: []Reference{{Table: "business_capabilities", Column: "parent_id"}},
		},
		{
			Area:         "architecture",
			Collection:   "categories",
			Table:        "categories",
			Model:        &model.Category{},
			Hierarchical: true,
			Rules: []validation.Rule{
				{Field: "name", Kind: validation.String, Required: true, MaxLen: 100, Unique: true},
				{Field: "description", Kind: validation.String},
				{Field: "parent_id", Kind: validation.Int, References: "categories"},
			},
			ReferencedBy: []Reference{
				{Table: "categories", Column: "parent_id"},
				{Table: "components", Column: "category_id"},
			},
		},

		// --- organization ---
		{
			Area:       "organization",
			Collection: "users",
			Table:      "users",
			Model:      &model.User{},
			Rules: []validation.Rule{
				{Field: "email", Kind: validation.String, Required: true, MaxLen: 100, Unique: true},
				{Field: "name", Kind: validation.String, MaxLen: 100},
			},
			ReferencedBy: []Reference{{Table: "group_members", Column: "user_id"}},
		},
		{
			Area:         "organization",
			Collection:   "groups",
			Table:        "groups",
			Model:        &model.Group{},
			Hierarchical: true,
			Rules: []validation.Rule{
				{Field: "name", Kind: validation.String, Required: true, MaxLen: 100, Unique: true},
				{Field: "description", Kind: validation.String},
				{Field: "parent_id", Kind: validation.Int, References: "groups"},
			},
			ReferencedBy: []Reference{
				{Table: "groups", Column: "parent_id"},
				{Table: "group_members", Column: "group_id"},
			},
		},
		{
			Area:       "organization",
			Collection: "group_members",
			Table:      "group_members",
			Model:      &model.GroupMember{},
			Rules: []validation.Rule{
				{Field: "group_id", Kind: validation.Int, Required: true, References: "groups"},
				{Field: "user_id", Kind: validation.Int, Required: true, References: "users", Unique: true, Scope: []string{"group_id"}},
				{Field: "role", Kind: validation.String, MaxLen: 50, Enum: []string{"owner", "maintainer", "member"}},
			},
		},

		// --- infrastructure ---
		{
			Area:       "infrastructure",
			Collection: "environments",
			Table:      "environments",
			Model:      &model.Environment{},
			Rules: []validation.Rule{
				{Field: "name", Kind: validation.String, Required: true, MaxLen: 50, Unique: true},
				{Field: "description", Kind: validation.String},
				{Field: "url", Kind: validation.String, MaxLen: 255},
				{Field: "position", Kind: validation.Int, Min: validation.Limit(0)},
			},
			DefaultOrder: "position ASC, id ASC",
			ReferencedBy: []Reference{
				{Table: "clusters", Column: "environment_id"},
				{Table: "deployments", Column: "environment_id"},
			},
		},
		{
			Area:       "infrastructure",
			Collection: "clusters",
			Table:      "clusters",
			Model:      &model.Cluster{},
			Rules: []validation.Rule{
				{Field: "name", Kind: validation.String, Required: true, MaxLen: 100, Unique: true},
				{Field: "description", Kind: validation.String},
				{Field: "environment_id", Kind: validation.Int, References: "environments"},
				{Field: "url", Kind: validation.String, MaxLen: 255},
			},
			ReferencedBy: []Reference{{Table: "cluster_nodes", Column: "cluster_id"}},
		},
		{
			Area:       "infrastructure",
			Collection: "nodes",
			Table:      "nodes",
			Model:      &model.Node{},
			Rules: []validation.Rule{
				{Field: "name", Kind: validation.String, Required: true, MaxLen: 100, Unique: true},
				{Field: "description", Kind: validation.String},
				{Field: "address", Kind: validation.String, MaxLen: 255},
			},
			ReferencedBy: []Reference{{Table: "cluster_nodes", Column: "node_id"}},
		},
		{
			Area:       "infrastructure",
			Collection: "cluster_nodes",
			Table:      "cluster_nodes",
			Model:      &model.ClusterNode{},
			Rules: []validation.Rule{
				{Field: "cluster_id", Kind: validation.Int, Required: true, References: "clusters"},
				{Field: "node_id", Kind: validation.Int, Required: true, References: "nodes", Unique: true, Scope: []string{"cluster_id"}},
				{Field: "role", Kind: validation.String, MaxLen: 50},
			},
		},
		{
			Area:       "infrastructure",
			Collection: "releases",
			Table:      "releases",
			Model:      &model.Release{},
			Rules: []validation.Rule{
				{Field: "version", Kind: validation.String, Required: true, MaxLen: 50, Unique: true, Scope: []string{"component_id"}},
				{Field: "component_id", Kind: validation.Int, Required: true, References: "components"},
				{Field: "notes", Kind: validation.String},
				{Field: "released_at", Kind: validation.Time},
			},
			ReferencedBy: []Reference{{Table: "deployments", Column: "release_id"}},
		},
		{
			Area:       "infrastructure",
			Collection: "deployments",
			Table:      "deployments",
			Model:      &model.Deployment{},
			Rules: []validation.Rule{
				{Field: "release_id", Kind: validation.Int, Required: true, References: "releases"},
				{Field: "environment_id", Kind: validation.Int, Required: true, References: "environments"},
				{Field: "started_at", Kind: validation.Time},
				{Field: "finished_at", Kind: validation.Time},
			},
			Compute: computeDeploymentStatus,
		},

		// --- security ---
		{
			Area:       "security",
			Collection: "credentials",
			Table:      "credentials",
			Model:      &model.Credential{},
			Rules: []validation.Rule{
				{Field: "name", Kind: validation.String, Required: true, MaxLen: 100, Unique: true},
				{Field: "type", Kind: validation.String, Required: true, MaxLen: 50, Enum: secret.Types()},
				{Field: "description", Kind: validation.String},
				{Field: "secret", Kind: validation.JSON, Required: true},
			},
			Hidden:       []string{"secret", "secret_ciphertext"},
			BeforeCreate: encryptSecretHook(enc),
			BeforeUpdate: encryptSecretHook(enc),
			ReferencedBy: []Reference{{Table: "ci_servers", Column: "credential_id"}},
		},
		{
			Area:       "security",
			Collection: "ci_servers",
			Table:      "ci_servers",
			Model:      &model.CiServer{},
			Rules: []validation.Rule{
				{Field: "name", Kind: validation.String, Required: true, MaxLen: 100, Unique: true},
				{Field: "url", Kind: validation.String, Required: true, MaxLen: 255},
				{Field: "credential_id", Kind: validation.Int, References: "credentials"},
				{Field: "description", Kind: validation.String},
			},
		},
		{
			Area:       "security",
			Collection: "service_account_tokens",
			Table:      "service_account_tokens",
			Model:      &model.ServiceAccountToken{},
			Rules: []validation.Rule{
				{Field: "name", Kind: validation.String, Required: true, MaxLen: 100, Unique: true},
				{Field: "expires_at", Kind: validation.Time},
			},
			Hidden:       []string{"token", "token_hash"},
			BeforeCreate: issueTokenHook(),
			Compute:      computeTokenExpiry,
		},
	}

	return newRegistry(defs)
}
