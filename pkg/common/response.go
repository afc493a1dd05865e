package common

import (
	"encoding/json"
	"net/http"
)

// WriteJSON writes v as the JSON body with the given status code.
func WriteJSON(w http.ResponseWriter, v any, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteRespJSON(w http.ResponseWriter, v any) {
	WriteJSON(w, v, http.StatusOK)
}

// WriteMsg answers with `{"message": msg}`.
func WriteMsg(w http.ResponseWriter, msg string, code int) {
	WriteJSON(w, map[string]string{"message": msg}, code)
}

// WriteErr answers with `{"error": msg}`.
func WriteErr(w http.ResponseWriter, msg string, code int) {
	WriteJSON(w, map[string]string{"error": msg}, code)
}
