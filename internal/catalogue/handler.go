package catalogue

import (
	"context"
	"net/http"
	"strings"

	"github.com/catalogue-dash/service-catalogue/internal/logger"
	"github.com/gin-gonic/gin"
)

// ComponentLister lists catalogue components
type ComponentLister interface {
	ListComponents(ctx context.Context) ([]Component, error)
}

// Handler serves catalogue component listings
type Handler struct {
	lister ComponentLister
}

func NewHandler(lister ComponentLister) *Handler {
	return &Handler{lister: lister}
}

// ListComponents returns the catalogue components, optionally filtered by
// ?product= and ?environment=.
func (h *Handler) ListComponents(c *gin.Context) {
	components, err := h.lister.ListComponents(c.Request.Context())
	if err != nil {
		logger.New(c.Request.Context()).LogError("list_components", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "catalogue unavailable"})
		return
	}

	filter := componentFilter{
		product:     strings.TrimSpace(c.Query("product")),
		environment: strings.TrimSpace(c.Query("environment")),
	}
	out := make([]Component, 0, len(components))
	for _, comp := range components {
		if filter.match(comp) {
			out = append(out, comp)
		}
	}

	c.JSON(http.StatusOK, gin.H{"components": out})
}

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/components", h.ListComponents)
}

// componentFilter holds the predicates of one listing request.
type componentFilter struct {
	product     string
	environment string
}

func (f componentFilter) match(comp Component) bool {
	if f.product != "" && !strings.EqualFold(comp.Product, f.product) {
		return false
	}
	if f.environment == "" {
		return true
	}
	for _, env := range comp.Environments {
		if strings.EqualFold(env, f.environment) {
			return true
		}
	}
	return false
}
