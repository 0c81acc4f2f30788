package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"sigs.k8s.io/yaml"
)

// OpenAPIHandler serves the API description as JSON.
type OpenAPIHandler struct {
	doc []byte
}

// NewOpenAPIHandler converts the YAML document to JSON once at startup and
// stamps info.version with the running build version when one is given.
func NewOpenAPIHandler(yamlSpec []byte, version string) (*OpenAPIHandler, error) {
	raw, err := yaml.YAMLToJSON(yamlSpec)
	if err != nil {
		return nil, fmt.Errorf("converting openapi document: %w", err)
	}

	if version == "" {
		return &OpenAPIHandler{doc: raw}, nil
	}

	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decoding openapi document: %w", err)
	}
	info, _ := doc["info"].(map[string]any)
	if info == nil {
		info = map[string]any{}
		doc["info"] = info
	}
	info["version"] = version

	out, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encoding openapi document: %w", err)
	}
	return &OpenAPIHandler{doc: out}, nil
}

func (h *OpenAPIHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(h.doc); err != nil {
		slog.Error("failed to write openapi response", "error", err)
	}
}
