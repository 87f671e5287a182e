package handlers

import (
	"encoding/json"
	"net/http"
)

// The two literal API error messages. The original service shipped these exact
// strings (casing included) and returned them with HTTP 200; clients match on
// the body, so both are preserved.
const (
	ErrMessageRetrieve = "Error #001: Invalid parameters"
	ErrMessageSave     = "Error #002: Invalid Parameters"
)

// JSONAPIError writes the fixed {"error": ...} payload of the posts API.
func JSONAPIError(w http.ResponseWriter, message string) {
	writeJSON(w, map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
