package api

import "net/http"

type SystemHandler struct {
	version   string
	buildTime string
}

func NewSystemHandler(version, buildTime string) *SystemHandler {
	return &SystemHandler{version: version, buildTime: buildTime}
}

func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{
		"status":  "ok",
		"service": "crm",
	}, http.StatusOK)
}

func (h *SystemHandler) Version(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{
		"version":   h.version,
		"buildTime": h.buildTime,
	}, http.StatusOK)
}
