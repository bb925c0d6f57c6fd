package api

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"gopkg.in/yaml.v3"
)

//go:embed openapi.yaml
var openAPIDocument []byte

// DocsHandler serves the OpenAPI description of the task API as YAML and JSON.
type DocsHandler struct {
	yamlDoc []byte
	jsonDoc []byte
}

// NewDocsHandler parses the embedded OpenAPI document once and prepares
// its JSON rendering.
func NewDocsHandler() (*DocsHandler, error) {
	var doc interface{}
	if err := yaml.Unmarshal(openAPIDocument, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse OpenAPI document: %w", err)
	}

	jsonDoc, err := json.Marshal(normalizeYAML(doc))
	if err != nil {
		return nil, fmt.Errorf("failed to render OpenAPI document as JSON: %w", err)
	}

	return &DocsHandler{yamlDoc: openAPIDocument, jsonDoc: jsonDoc}, nil
}

// Routes returns a router with openapi.yaml and openapi.json.
func (h *DocsHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/openapi.yaml", h.serve("application/yaml", h.yamlDoc))
	r.Get("/openapi.json", h.serve("application/json", h.jsonDoc))
	return r
}

func (h *DocsHandler) serve(contentType string, body []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(body)
	}
}

// normalizeYAML converts any map[interface{}]interface{} left by the YAML
// decoder into map[string]interface{} so encoding/json accepts it.
func normalizeYAML(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		for k, val := range t {
			t[k] = normalizeYAML(val)
		}
		return t
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = normalizeYAML(val)
		}
		return out
	case []interface{}:
		for i, val := range t {
			t[i] = normalizeYAML(val)
		}
		return t
	default:
		return v
	}
}
