package catalogue

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/catalogue-dash/service-catalogue/internal/dependencies/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dependencyInfoBody = `{
  "PROD": {
    "categoryToComponent": {},
    "componentDependencyInfo": {
      "web-ui": {"dependencies": {"components": ["api"], "categories": ["frontend"], "other": [{"name": "localhost", "type": "http"}]}, "dependents": []}
    },
    "missingServices": ["exampleApi1"]
  },
  "PREPROD": {"categoryToComponent": {}, "componentDependencyInfo": {}, "missingServices": ["unknownHost1"]}
}`

func TestClient_GetDependencyInfo(t *testing.T) {
	for name, body := range map[string]string{
		"raw":      dependencyInfoBody,
		"envelope": `{"data": ` + dependencyInfoBody + `}`,
	} {
		t.Run(name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/v1/dependency-info", r.URL.Path)
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(body))
			}))
			defer server.Close()

			info, err := NewClient(Options{BaseURL: server.URL + "/"}).GetDependencyInfo(context.Background())
			require.NoError(t, err)

			assert.Len(t, info, 3)
			assert.Equal(t, 1, info[domain.EnvProd].ComponentCount())
			assert.Equal(t, []string{}, info[domain.EnvDev].MissingServices)
		})
	}
}

func TestClient_ListComponents(t *testing.T) {
	for name, body := range map[string]string{
		"raw":      `[{"id": 1, "name": "api"}, {"id": 2, "name": "web-ui"}]`,
		"envelope": `{"data": [{"id": 1, "name": "api"}, {"id": 2, "name": "web-ui"}], "meta": {}}`,
	} {
		t.Run(name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/v1/components", r.URL.Path)
				w.Write([]byte(body))
			}))
			defer server.Close()

			components, err := NewClient(Options{BaseURL: server.URL}).ListComponents(context.Background())
			require.NoError(t, err)
			require.Len(t, components, 2)
			assert.Equal(t, "web-ui", components[1].Name)
		})
	}
}

func TestClient_SendsBearerToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	components, err := NewClient(Options{BaseURL: server.URL, Token: "secret-token"}).ListComponents(context.Background())
	require.NoError(t, err)
	assert.Empty(t, components)
}

func TestClient_StatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("maintenance"))
	}))
	defer server.Close()

	_, err := NewClient(Options{BaseURL: server.URL}).GetDependencyInfo(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUpstream)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)
	assert.Equal(t, "maintenance", statusErr.Body)
}

func TestClient_UnreachableHost(t *testing.T) {
	_, err := NewClient(Options{BaseURL: "http://127.0.0.1:1"}).GetDependencyInfo(context.Background())
	assert.ErrorIs(t, err, domain.ErrUpstream)
}

func TestClient_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient(Options{BaseURL: "http://127.0.0.1:1"}).ListComponents(ctx)
	assert.Error(t, err)
}

func TestUnwrapData(t *testing.T) {
	assert.JSONEq(t, `[1,2]`, string(unwrapData([]byte(` [1,2] `))))
	assert.JSONEq(t, `{"a":1}`, string(unwrapData([]byte(`{"data":{"a":1}}`))))
	assert.JSONEq(t, `{"data":null,"x":1}`, string(unwrapData([]byte(`{"data":null,"x":1}`))))
	assert.JSONEq(t, `{"PROD":{}}`, string(unwrapData([]byte(`{"PROD":{}}`))))
}
