package registry

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/angelcamposm/atlas-catalog-sub002/internal/catalog/apperr"
	"github.com/angelcamposm/atlas-catalog-sub002/internal/catalog/secret"
	"golang.org/x/crypto/bcrypt"
)

// encryptSecretHook parses the decoded secret payload against the credential
// type and replaces it with its ciphertext. On update the type may come from
// the current record when the payload does not change it.
func encryptSecretHook(enc *secret.Encryptor) Hook {
	return func(ctx context.Context, payload Record, base Record) (Record, error) {
		raw, present := payload["secret"]
		if !present {
			return nil, nil
		}

		typ, _ := payload["type"].(string)
		if typ == "" && base != nil {
			typ, _ = base["type"].(string)
		}

		sec, err := secret.Parse(typ, raw)
		if err != nil {
			return nil, apperr.NewValidationError(apperr.FieldErrors{
				"secret": {err.Error()},
			})
		}

		ciphertext, err := enc.Encrypt(sec)
		if err != nil {
			return nil, err
		}

		delete(payload, "secret")
		payload["secret_ciphertext"] = ciphertext
		return nil, nil
	}
}

// issueTokenHook generates the token server-side, stores only its bcrypt
// hash and reveals the plaintext exactly once in the create response.
func issueTokenHook() Hook {
	return func(ctx context.Context, payload Record, base Record) (Record, error) {
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			return nil, err
		}
		token := "sat_" + base64.RawURLEncoding.EncodeToString(buf)

		hash, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}

		payload["token_hash"] = string(hash)
		return Record{"token": token}, nil
	}
}

// computeTokenExpiry appends the is_expired view over expires_at.
func computeTokenExpiry(rec Record) {
	rec["is_expired"] = false
	if raw, ok := rec["expires_at"].(string); ok && raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			rec["is_expired"] = t.Before(time.Now())
		}
	}
}

// computeDeploymentStatus derives the deployment status from its
// start/finish timestamps.
func computeDeploymentStatus(rec Record) {
	switch {
	case rec["started_at"] == nil:
		rec["status"] = "pending"
	case rec["finished_at"] == nil:
		rec["status"] = "running"
	default:
		rec["status"] = "completed"
	}
}
