package catalogue

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const componentsBody = `{"data": [
  {"id": 1, "name": "api", "product": "Payments", "environments": ["prod", "dev"]},
  {"id": 2, "name": "web-ui", "product": "Payments", "environments": ["dev"]},
  {"id": 3, "name": "auth", "product": "Identity", "environments": ["prod"]}
]}`

func setupComponentsRouter(t *testing.T, status int, body string) *gin.Engine {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(NewClient(Options{BaseURL: server.URL})).Register(r.Group("/api/v1"))
	return r
}

func getComponents(r *gin.Engine, target string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, target, nil))
	return rr
}

func TestHandler_ListComponents(t *testing.T) {
	r := setupComponentsRouter(t, http.StatusOK, componentsBody)

	rr := getComponents(r, "/api/v1/components")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"name":"auth"`)
	assert.Contains(t, rr.Body.String(), `"name":"web-ui"`)
}

func TestHandler_ListComponentsFiltered(t *testing.T) {
	r := setupComponentsRouter(t, http.StatusOK, componentsBody)

	rr := getComponents(r, "/api/v1/components?product=payments&environment=PROD")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t,
		`{"components":[{"id":1,"name":"api","product":"Payments","environments":["prod","dev"]}]}`,
		rr.Body.String())

	rr = getComponents(r, "/api/v1/components?product=nothing")
	assert.JSONEq(t, `{"components":[]}`, rr.Body.String())
}

func TestHandler_ListComponentsUpstreamError(t *testing.T) {
	r := setupComponentsRouter(t, http.StatusInternalServerError, "boom")

	rr := getComponents(r, "/api/v1/components")
	assert.Equal(t, http.StatusBadGateway, rr.Code)
}
