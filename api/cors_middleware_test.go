package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCORSMiddleware(t *testing.T) {
	testCases := []struct {
		name       string
		origins    []string
		method     string
		origin     string
		wantStatus int
		wantAllow  string
	}{
		{
			name:       "AllowedOrigin",
			origins:    []string{"http://localhost:3000"},
			method:     http.MethodGet,
			origin:     "http://localhost:3000",
			wantStatus: http.StatusOK,
			wantAllow:  "http://localhost:3000",
		},
		{
			name:       "ForeignOrigin",
			origins:    []string{"http://localhost:3000"},
			method:     http.MethodGet,
			origin:     "http://evil.example",
			wantStatus: http.StatusOK,
			wantAllow:  "",
		},
		{
			name:       "Wildcard",
			origins:    []string{"*"},
			method:     http.MethodGet,
			origin:     "http://anyone.example",
			wantStatus: http.StatusOK,
			wantAllow:  "*",
		},
		{
			name:       "Preflight",
			origins:    []string{"http://localhost:3000"},
			method:     http.MethodOptions,
			origin:     "http://localhost:3000",
			wantStatus: http.StatusNoContent,
			wantAllow:  "http://localhost:3000",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			service := newTestService(t, nil)
			service.config.AllowedOrigins = tc.origins
			service.setupRouter(service.server)

			recorder := httptest.NewRecorder()
			request, err := http.NewRequest(tc.method, PingURL, nil)
			require.NoError(t, err)
			request.Header.Set("Origin", tc.origin)

			service.router.ServeHTTP(recorder, request)

			require.Equal(t, tc.wantStatus, recorder.Code)
			require.Equal(t, tc.wantAllow, recorder.Header().Get("Access-Control-Allow-Origin"))
			require.Contains(t, recorder.Header().Get("Access-Control-Allow-Headers"), RequestIDHeader)
		})
	}
}
