package info

import (
	"net/http"
)

// GetStatus returns a simple health payload that can be used for lightweight diagnostics.
func (ih *InfoHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	ih.respondProbe(w, r, http.StatusOK, "HEALTHY")
}

// GetHealthz implements the liveness probe recommended for Kubernetes.
func (ih *InfoHandler) GetHealthz(w http.ResponseWriter, r *http.Request) {
	if err := ih.runChecks(r.Context(), ih.livenessChecks); err != nil {
		ih.HandleServiceUnavailableError(w, r, err, "liveness probe failed")
		return
	}
	ih.respondProbe(w, r, http.StatusOK, "ok")
}

// GetReadyz implements the readiness probe recommended for Kubernetes.
func (ih *InfoHandler) GetReadyz(w http.ResponseWriter, r *http.Request) {
	if err := ih.runChecks(r.Context(), ih.readinessChecks); err != nil {
		ih.HandleServiceUnavailableError(w, r, err, "readiness probe failed")
		return
	}
	ih.respondProbe(w, r, http.StatusOK, "ready")
}

// GetVersion returns the structure provided by the configured InfoProvider.
func (ih *InfoHandler) GetVersion(w http.ResponseWriter, r *http.Request) {
	payload := ih.infoProvider()
	if payload == nil {
		payload = map[string]string{}
	}
	ih.RespondWithJSON(w, r, http.StatusOK, payload)
}

// GetOpenAPIJSON writes the OpenAPI document exactly as provided.
func (ih *InfoHandler) GetOpenAPIJSON(w http.ResponseWriter, r *http.Request) {
	ih.serveDocument(w, r, ih.jsonProvider, "application/json")
}

// GetOpenAPIYAML writes the YAML rendition of the OpenAPI document.
func (ih *InfoHandler) GetOpenAPIYAML(w http.ResponseWriter, r *http.Request) {
	ih.serveDocument(w, r, ih.yamlProvider, "application/yaml")
}

func (ih *InfoHandler) serveDocument(w http.ResponseWriter, r *http.Request, provider DocumentProvider, contentType string) {
	body, err := provider()
	if err != nil {
		ih.HandleInternalServerError(w, r, err, "failed to load openapi document")
		return
	}
	ih.RespondWithBytes(w, r, http.StatusOK, contentType, body)
}
