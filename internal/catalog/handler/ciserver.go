package handler

import (
	"encoding/base64"
	"errors"
	"net/http"
	"strconv"

	"github.com/angelcamposm/atlas-catalog-sub002/internal/catalog/apperr"
	"github.com/angelcamposm/atlas-catalog-sub002/internal/catalog/registry"
	"github.com/angelcamposm/atlas-catalog-sub002/internal/catalog/repository"
	"github.com/angelcamposm/atlas-catalog-sub002/internal/catalog/secret"
	"github.com/angelcamposm/atlas-catalog-sub002/pkg/logger"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// CiServerHandler serves the ci_server operations that need the linked
// credential rather than plain CRUD.
type CiServerHandler struct {
	servers     *registry.Definition
	credentials *registry.Definition
	repo        *repository.Repository
	enc         *secret.Encryptor
}

// NewCiServerHandler wires the handler against the two definitions it reads.
func NewCiServerHandler(reg *registry.Registry, repo *repository.Repository, enc *secret.Encryptor) *CiServerHandler {
	servers, _ := reg.Lookup("security", "ci_servers")
	credentials, _ := reg.Lookup("security", "credentials")
	return &CiServerHandler{servers: servers, credentials: credentials, repo: repo, enc: enc}
}

// VerifyCredential checks that the server's linked credential exists and
// decrypts cleanly. It fails fast with a missing-credential error instead
// of proceeding with a null secret, and never echoes the secret itself.
func (h *CiServerHandler) VerifyCredential(c echo.Context) error {
	log := logger.FromEcho(c)
	ctx := c.Request().Context()

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Record not found"})
	}

	server, err := h.repo.GetByID(ctx, h.servers, uint(id))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Record not found"})
		}
		log.Error("Failed to load ci server", zap.Uint64("id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal error"})
	}

	credID, ok := server["credential_id"].(float64)
	if !ok || credID <= 0 {
		missing := &apperr.MissingCredentialError{Entity: "ci server", ID: uint(id)}
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": missing.Error()})
	}

	cred, err := h.repo.GetByID(ctx, h.credentials, uint(credID))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			missing := &apperr.MissingCredentialError{Entity: "ci server", ID: uint(id)}
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": missing.Error()})
		}
		log.Error("Failed to load credential", zap.Float64("credential_id", credID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal error"})
	}

	typ, _ := cred["type"].(string)
	ciphertextB64, _ := cred["secret_ciphertext"].(string)
	ciphertext, decodeErr := base64.StdEncoding.DecodeString(ciphertextB64)
	if decodeErr != nil || len(ciphertext) == 0 {
		missing := &apperr.MissingCredentialError{Entity: "ci server", ID: uint(id)}
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": missing.Error()})
	}

	if _, err := h.enc.Decrypt(typ, ciphertext); err != nil {
		log.Error("Credential failed to decrypt",
			zap.Uint64("ci_server_id", id),
			zap.Error(err))
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "Linked credential is unreadable"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"data": echo.Map{
			"ci_server_id":  uint(id),
			"credential_id": uint(credID),
			"type":          typ,
			"valid":         true,
		},
	})
}
