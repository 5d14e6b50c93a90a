package explain

import (
	"encoding/json"
	"net/http"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeBytes(w, status, mustJSONError(errorResponse{Error: code}))
}

func writeExplainResponse(w http.ResponseWriter, status int, payload explainResponse) {
	writeBytes(w, status, mustJSONExplain(payload))
}

func writeBytes(w http.ResponseWriter, status int, payload []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(payload)
}

func mustJSONError(payload errorResponse) []byte {
	data, _ := json.Marshal(payload)
	return data
}

func mustJSONExplain(payload explainResponse) []byte {
	data, _ := json.Marshal(payload)
	return data
}
