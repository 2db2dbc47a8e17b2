package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lmops/lmctl/pkg/types"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	cred := types.Credential{Company: "acme", AccessID: "id", AccessKey: "key"}
	return NewClient(cred, WithBaseURL(srv.URL))
}

func TestDoSuccess(t *testing.T) {
	var gotReq *http.Request
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotReq = r.Clone(context.Background())
		w.Write([]byte(`{"id":42,"displayName":"web01"}`))
	})

	body, err := c.Do(context.Background(), Request{
		Method:     http.MethodGet,
		Path:       "/device/devices",
		PathSuffix: "/42",
	})
	require.NoError(t, err)
	assert.Equal(t, 42, body.ID())
	assert.Equal(t, "web01", body.String("displayName"))

	assert.Equal(t, "/device/devices/42", gotReq.URL.Path)
	assert.Equal(t, "3", gotReq.Header.Get("X-Version"))
	assert.Equal(t, "application/json", gotReq.Header.Get("Content-Type"))
	assert.True(t, strings.HasPrefix(gotReq.Header.Get("Authorization"), "LMv1 id:"))
}

func TestDoXVersionOverride(t *testing.T) {
	var gotVersion string
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotVersion = r.Header.Get("X-Version")
		w.Write([]byte(`{}`))
	})

	_, err := c.Do(context.Background(), Request{
		Method:   http.MethodPost,
		Path:     "/setting/collector/collectors",
		XVersion: "4",
	})
	require.NoError(t, err)
	assert.Equal(t, "4", gotVersion)
}

func TestDoErrorCodeInBody(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		// Lookup misses arrive with HTTP 200 and an in-body error.
		w.Write([]byte(`{"errorCode":1404,"errorMessage":"No such Agent"}`))
	})

	body, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/setting/collector/collectors", PathSuffix: "/9"})
	require.Error(t, err)

	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, 200, apiErr.StatusCode)
	assert.Equal(t, 1404, apiErr.Code)
	assert.Equal(t, "No such Agent", apiErr.Message)

	// The decoded body travels with the error for resolver inspection.
	assert.Equal(t, 1404, body.Int("errorCode"))
	assert.Equal(t, types.Record(apiErr.Body), body)
}

func TestDoAuthFailure(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"http 401", http.StatusUnauthorized, `{"errorMessage":"unauthorized"}`},
		{"code 1401", http.StatusOK, `{"errorCode":1401,"errorMessage":"Authentication failed"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			_, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/device/devices"})
			assert.True(t, errors.Is(err, ErrAuth))
		})
	}
}

func TestDoNonJSONErrorBody(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("Bad Gateway"))
	})

	_, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/device/devices"})
	require.Error(t, err)

	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, "Bad Gateway", apiErr.Message)
}

func TestDoMalformedSuccessBody(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>maintenance</html>`))
	})

	_, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/device/devices"})
	require.Error(t, err)
	// The raw body travels in the error for diagnosis.
	assert.Contains(t, err.Error(), "<html>maintenance</html>")
}

func TestDoQueryEncoding(t *testing.T) {
	var gotQuery string
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{}`))
	})

	q := make(map[string][]string)
	q["filter"] = []string{`displayName:"web01"`}
	q["sort"] = []string{"id"}
	_, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/device/devices", Query: q})
	require.NoError(t, err)
	assert.Contains(t, gotQuery, "filter=displayName%3A%22web01%22")
	assert.Contains(t, gotQuery, "sort=id")
}

func TestNewClientBaseURL(t *testing.T) {
	c := NewClient(types.Credential{Company: "AcmeCorp", AccessID: "id", AccessKey: "key"})
	assert.Equal(t, "https://acmecorp.logicmonitor.com/santaba/rest", c.baseURL)
}
