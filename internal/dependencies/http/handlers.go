package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/catalogue-dash/service-catalogue/internal/dependencies/domain"
	"github.com/catalogue-dash/service-catalogue/internal/dependencies/graph/export"
	"github.com/catalogue-dash/service-catalogue/internal/dependencies/service"
	"github.com/catalogue-dash/service-catalogue/internal/logger"
	"github.com/gin-gonic/gin"
)

// DataLoader provides dependency data for a request
type DataLoader interface {
	Aggregator(ctx context.Context) (*service.Dependencies, error)
	Refresh(ctx context.Context) (domain.DependencyInfo, error)
	Invalidate(ctx context.Context) error
}

// Handler serves the dependency views
type Handler struct {
	loader DataLoader
}

// New creates a new Handler
func New(loader DataLoader) *Handler {
	return &Handler{loader: loader}
}

// GetComponentDependencies returns the dependencies of one component
func (h *Handler) GetComponentDependencies(c *gin.Context) {
	name := strings.TrimSpace(c.Param("name"))
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "component name is required"})
		return
	}

	deps, ok := h.aggregator(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, deps.GetDependencies(name))
}

// GetDependencies returns the merged dependencies of the components in the query
func (h *Handler) GetDependencies(c *gin.Context) {
	deps, ok := h.aggregator(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, deps.GetDependenciesForComponents(componentNames(c)))
}

// GetUnknownHosts lists names that do not resolve to a catalogue component
func (h *Handler) GetUnknownHosts(c *gin.Context) {
	deps, ok := h.aggregator(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"unknown_hosts": deps.GetAllUnknownHosts()})
}

// GetGraph returns the dependency diagram as JSON, or DOT with ?format=dot
func (h *Handler) GetGraph(c *gin.Context) {
	names := componentNames(c)
	if len(names) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "at least one component is required"})
		return
	}

	deps, ok := h.aggregator(c)
	if !ok {
		return
	}
	g := deps.Graph(names)

	if strings.EqualFold(c.Query("format"), "dot") {
		c.Data(http.StatusOK, "text/vnd.graphviz; charset=utf-8", []byte(export.ToDOT(g, strings.Join(names, ", "))))
		return
	}
	c.JSON(http.StatusOK, g)
}

// Refresh reloads dependency info from the catalogue
func (h *Handler) Refresh(c *gin.Context) {
	info, err := h.loader.Refresh(c.Request.Context())
	if err != nil {
		logger.New(c.Request.Context()).LogError("refresh_dependency_info", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to refresh dependency info"})
		return
	}

	counts := gin.H{}
	for _, env := range domain.EnvTypes {
		counts[string(env)] = info[env].ComponentCount()
	}
	c.JSON(http.StatusAccepted, gin.H{"status": "refreshed", "components": counts})
}

// InvalidateCache drops the cached dependency info; the next read refetches it
func (h *Handler) InvalidateCache(c *gin.Context) {
	if err := h.loader.Invalidate(c.Request.Context()); err != nil {
		logger.New(c.Request.Context()).LogError("invalidate_dependency_info", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to invalidate dependency cache"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) aggregator(c *gin.Context) (*service.Dependencies, bool) {
	deps, err := h.loader.Aggregator(c.Request.Context())
	if err != nil {
		logger.New(c.Request.Context()).LogError("load_dependency_info", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "dependency data unavailable"})
		return nil, false
	}
	return deps, true
}

// componentNames accepts ?components=a,b as well as repeated parameters.
func componentNames(c *gin.Context) []string {
	names := []string{}
	for _, raw := range c.QueryArray("components") {
		for _, name := range strings.Split(raw, ",") {
			if name = strings.TrimSpace(name); name != "" {
				names = append(names, name)
			}
		}
	}
	return names
}
