package http

import (
	"net/http"
)

// getServerVersion answers the root health probe with the running server's
// version as plain text. Clients check it before a sync round to confirm the
// server is up and which protocol revision it speaks.
func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	serverVersion := h.services.AppInfoService.GetAppVersion(r.Context())

	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte(serverVersion))
}
