package providers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouterProvider_RegistersGetRoutes(t *testing.T) {
	router := NewRouterProvider()
	router.Get("/entities", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	router.Get("/calendar.ics", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	routes := router.GetRoutes()

	require.Len(t, routes, 2)
	assert.Equal(t, "/entities", routes[0].Url)
	assert.Equal(t, "/calendar.ics", routes[1].Url)
}

func TestRouterProvider_RejectsOtherMethods(t *testing.T) {
	router := NewRouterProvider()
	router.Get("/entities", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	handler := router.GetRoutes()[0].Handler

	get := httptest.NewRecorder()
	handler.ServeHTTP(get, httptest.NewRequest(http.MethodGet, "/entities", nil))
	assert.Equal(t, http.StatusOK, get.Code)

	post := httptest.NewRecorder()
	handler.ServeHTTP(post, httptest.NewRequest(http.MethodPost, "/entities", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, post.Code)
}
