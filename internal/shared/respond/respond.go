// Package respond holds the JSON response helpers shared by every router.
// All error bodies use the single {"error": ...} envelope, regardless of
// whether the status is 4xx or a deliberate 200 for a downstream failure.
package respond

import (
	"encoding/json"
	"net/http"
)

type errorBody struct {
	Error string `json:"error"`
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func Error(w http.ResponseWriter, status int, detail string) {
	JSON(w, status, errorBody{Error: detail})
}

// GatewayError reports a downstream collaborator failure. The transport
// status is 200; the failure travels in the body.
func GatewayError(w http.ResponseWriter, detail string) {
	JSON(w, http.StatusOK, errorBody{Error: detail})
}
