package handler

import (
	"github.com/angelcamposm/atlas-catalog-sub002/internal/catalog/registry"
	"github.com/angelcamposm/atlas-catalog-sub002/internal/catalog/repository"
	"github.com/angelcamposm/atlas-catalog-sub002/internal/catalog/secret"
	"github.com/angelcamposm/atlas-catalog-sub002/internal/metrics"
	"github.com/labstack/echo/v4"
)

// RegisterRoutes mounts the generic CRUD surface for every registered
// entity under /v1/{area}/{collection}, plus the few collection-specific
// operations that go beyond plain CRUD.
func RegisterRoutes(e *echo.Echo, reg *registry.Registry, repo *repository.Repository, enc *secret.Encryptor, m *metrics.HTTPMetrics) {
	v1 := e.Group("/v1")

	for _, def := range reg.All() {
		h := NewEntityHandler(def, repo, m)

		g := v1.Group("/" + def.Area + "/" + def.Collection)
		g.GET("", h.List)
		g.POST("", h.Create)
		g.GET("/:id", h.Get)
		g.PUT("/:id", h.Update)
		g.DELETE("/:id", h.Delete)
	}

	ci := NewCiServerHandler(reg, repo, enc)
	v1.POST("/security/ci_servers/:id/verify-credential", ci.VerifyCredential)
}
