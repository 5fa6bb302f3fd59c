package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Drolfothesgnir/bbcode/bbcode"
	"github.com/stretchr/testify/require"
)

func TestListTags(t *testing.T) {
	service := newTestService(t, nil)
	recorder := httptest.NewRecorder()

	request, err := http.NewRequest(http.MethodGet, TagsURL, nil)
	require.NoError(t, err)

	service.router.ServeHTTP(recorder, request)
	require.Equal(t, http.StatusOK, recorder.Code)

	var resp TagsResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))

	require.False(t, resp.Autolink)
	require.Len(t, resp.Tags, len(bbcode.AllTags()))

	byTag := make(map[string]string, len(resp.Tags))
	for _, spec := range resp.Tags {
		byTag[spec.Tag] = spec.Kind
	}

	require.Equal(t, "simple", byTag["b"])
	require.Equal(t, "default_arg", byTag["url"])
	require.Equal(t, "self_closing", byTag["img"])
	require.Equal(t, "defined_tag", byTag["quote"])
}

func TestPing(t *testing.T) {
	service := newTestService(t, nil)
	recorder := httptest.NewRecorder()

	request, err := http.NewRequest(http.MethodGet, PingURL, nil)
	require.NoError(t, err)

	service.router.ServeHTTP(recorder, request)
	require.Equal(t, http.StatusOK, recorder.Code)
	require.Equal(t, "pong", recorder.Body.String())
}
