package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xufanglin/rimmich/api/models"
)

func TestServerRoutes(t *testing.T) {
	s := NewServer("")
	assert.Equal(t, DefaultAddr, s.addr)
	assert.Same(t, s.hub, models.GetNotifyHub())

	h := s.Handler()
	req := httptest.NewRequest(http.MethodGet, "/api/self/v1/status", nil)
	req.RemoteAddr = "127.0.0.1:40000"
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"notify_ws_enabled":true`)

	req = httptest.NewRequest(http.MethodGet, "/api/self/v1/batches/missing", nil)
	req.RemoteAddr = "[::1]:40000"
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
