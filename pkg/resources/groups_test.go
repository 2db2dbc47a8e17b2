package resources

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckGroupPath(t *testing.T) {
	valid := []string{"/", "/Prod", "/Prod/Web/Frontend", "Prod/Web", "  /Prod  "}
	for _, p := range valid {
		assert.NoError(t, CheckGroupPath(p), p)
	}

	invalid := []string{"/Prod//Web", "/Prod/ Web", "/Prod /Web", "//"}
	for _, p := range invalid {
		assert.Error(t, CheckGroupPath(p), p)
	}
}

func TestEnsureGroupPathRoot(t *testing.T) {
	r := testResolver(t, func(w http.ResponseWriter, req *http.Request) {
		t.Error("root path must not be looked up")
	})

	for _, p := range []string{"", "/", "  /  "} {
		id, err := r.EnsureGroupPath(context.Background(), p)
		require.NoError(t, err)
		assert.Equal(t, 1, id)
	}
}

func TestEnsureGroupPathExisting(t *testing.T) {
	r := testResolver(t, func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, `fullPath:"Prod/Web"`, req.URL.Query().Get("filter"))
		writeJSON(w, map[string]any{"total": 1, "items": []map[string]any{{"id": 55, "fullPath": "Prod/Web"}}})
	})

	id, err := r.EnsureGroupPath(context.Background(), "/Prod/Web")
	require.NoError(t, err)
	assert.Equal(t, 55, id)
}

func TestEnsureGroupPathCreatesMissingChain(t *testing.T) {
	// Only /Prod exists. Ensuring /Prod/Web/Frontend must create Web under
	// Prod, then Frontend under Web.
	existing := map[string]int{"Prod": 10}
	nextID := 100
	var created []map[string]any

	r := testResolver(t, func(w http.ResponseWriter, req *http.Request) {
		if req.Method == http.MethodPost {
			raw, _ := io.ReadAll(req.Body)
			var body map[string]any
			json.Unmarshal(raw, &body)
			created = append(created, body)

			nextID++
			name := body["name"].(string)
			existing[name] = nextID
			writeJSON(w, map[string]any{"id": nextID, "name": name})
			return
		}

		// fullPath filter lookup; only the leaf name matters for the fake.
		filter := req.URL.Query().Get("filter")
		for name, id := range existing {
			fp := map[string]string{
				"Prod":     `fullPath:"Prod"`,
				"Web":      `fullPath:"Prod/Web"`,
				"Frontend": `fullPath:"Prod/Web/Frontend"`,
			}[name]
			if filter == fp {
				writeJSON(w, map[string]any{"total": 1, "items": []map[string]any{{"id": id}}})
				return
			}
		}
		writeJSON(w, map[string]any{"total": 0, "items": []any{}})
	})

	id, err := r.EnsureGroupPath(context.Background(), "/Prod/Web/Frontend")
	require.NoError(t, err)

	require.Len(t, created, 2)
	assert.Equal(t, "Web", created[0]["name"])
	assert.Equal(t, float64(10), created[0]["parentId"])
	assert.Equal(t, "Frontend", created[1]["name"])
	assert.Equal(t, float64(101), created[1]["parentId"])
	assert.Equal(t, 102, id)
}

func TestEnsureGroupPathTopLevelCreate(t *testing.T) {
	var created map[string]any
	r := testResolver(t, func(w http.ResponseWriter, req *http.Request) {
		if req.Method == http.MethodPost {
			raw, _ := io.ReadAll(req.Body)
			json.Unmarshal(raw, &created)
			writeJSON(w, map[string]any{"id": 77})
			return
		}
		writeJSON(w, map[string]any{"total": 0, "items": []any{}})
	})

	id, err := r.EnsureGroupPath(context.Background(), "/Staging")
	require.NoError(t, err)
	assert.Equal(t, 77, id)
	assert.Equal(t, "Staging", created["name"])
	assert.Equal(t, float64(1), created["parentId"])
}

func TestEnsureGroupPathLookupErrorAborts(t *testing.T) {
	r := testResolver(t, func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"errorCode":1500,"errorMessage":"internal"}`))
	})

	_, err := r.EnsureGroupPath(context.Background(), "/Prod/Web")
	assert.Error(t, err)
}
