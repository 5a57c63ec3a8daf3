// Package secret models credential payloads as a tagged union over the
// credential type, so the semantically primary value is a property of the
// type rather than a runtime map lookup that can ask for the wrong key.
package secret

import (
	"encoding/json"
	"fmt"
)

// Type discriminates the credential union.
type Type string

const (
	TypeApiToken    Type = "api_token"
	TypeBasicAuth   Type = "basic_auth"
	TypeBearerToken Type = "bearer_token"
	TypeSshKey      Type = "ssh_key"
)

// Types lists every valid credential type, in registry enum order.
func Types() []string {
	return []string{
		string(TypeApiToken),
		string(TypeBasicAuth),
		string(TypeBearerToken),
		string(TypeSshKey),
	}
}

// Secret is one variant of the credential union.
type Secret interface {
	// Value returns the semantically primary credential value for the type.
	Value() string
	// Validate reports whether the variant's required sub-fields are set.
	Validate() error
}

// ApiToken holds a plain API token
type ApiToken struct {
	Token string `json:"token"`
}

func (s ApiToken) Value() string { return s.Token }

func (s ApiToken) Validate() error {
	if s.Token == "" {
		return fmt.Errorf("token is required for %s credentials", TypeApiToken)
	}
	return nil
}

// BasicAuth holds a username/password pair
type BasicAuth struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s BasicAuth) Value() string { return s.Password }

func (s BasicAuth) Validate() error {
	if s.Username == "" || s.Password == "" {
		return fmt.Errorf("username and password are required for %s credentials", TypeBasicAuth)
	}
	return nil
}

// BearerToken holds a bearer token
type BearerToken struct {
	Token string `json:"token"`
}

func (s BearerToken) Value() string { return s.Token }

func (s BearerToken) Validate() error {
	if s.Token == "" {
		return fmt.Errorf("token is required for %s credentials", TypeBearerToken)
	}
	return nil
}

// SshKey holds a private key
type SshKey struct {
	PrivateKey string `json:"private_key"`
}

func (s SshKey) Value() string { return s.PrivateKey }

func (s SshKey) Validate() error {
	if s.PrivateKey == "" {
		return fmt.Errorf("private_key is required for %s credentials", TypeSshKey)
	}
	return nil
}

// Parse builds the union variant selected by typ from a decoded JSON value.
func Parse(typ string, raw interface{}) (Secret, error) {
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid secret payload: %w", err)
	}

	var s Secret
	switch Type(typ) {
	case TypeApiToken:
		var v ApiToken
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("invalid %s secret: %w", typ, err)
		}
		s = v
	case TypeBasicAuth:
		var v BasicAuth
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("invalid %s secret: %w", typ, err)
		}
		s = v
	case TypeBearerToken:
		var v BearerToken
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("invalid %s secret: %w", typ, err)
		}
		s = v
	case TypeSshKey:
		var v SshKey
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("invalid %s secret: %w", typ, err)
		}
		s = v
	default:
		return nil, fmt.Errorf("unknown credential type %q", typ)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}
