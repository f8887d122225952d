package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecomm-labs/storefront-api/pkg/router"
)

func ok(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestNamedRoutes(t *testing.T) {
	r := router.New()
	r.Get("/users/{id}", "users.show", ok)
	r.Post("/users", "users.create", ok)

	path, found := r.Path("users.show")
	require.True(t, found)
	assert.Equal(t, "/users/{id}", path)

	_, found = r.Path("users.destroy")
	assert.False(t, found)
}

func TestURLReversal(t *testing.T) {
	r := router.New()
	r.Put("/orders/{order_id}/add_product/{product_id}", "orders.attach", ok)

	url, err := r.URL("orders.attach", map[string]string{
		"order_id":   "3",
		"product_id": "7",
	})
	require.NoError(t, err)
	assert.Equal(t, "/orders/3/add_product/7", url)

	_, err = r.URL("orders.attach", map[string]string{"order_id": "3"})
	require.Error(t, err)

	_, err = r.URL("nope", nil)
	require.Error(t, err)
}

func TestRoutesSnapshot(t *testing.T) {
	r := router.New()
	r.Get("/a", "a", ok)
	r.Delete("/b", "b", ok)

	infos := r.Routes()
	require.Len(t, infos, 2)
	assert.Equal(t, http.MethodGet, infos[0].Method)
	assert.Equal(t, "/a", infos[0].Path)
	assert.Equal(t, http.MethodDelete, infos[1].Method)
}

func TestGroupPrefixAndMiddleware(t *testing.T) {
	var order []string
	tag := func(name string) router.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	r := router.New()
	api := r.Group("/api", tag("outer"))
	api.Group("/v1", tag("inner")).Get("/ping", "ping", ok)

	path, found := r.Path("ping")
	require.True(t, found)
	assert.Equal(t, "/api/v1/ping", path)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"outer", "inner"}, order)
}
