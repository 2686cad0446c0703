package handler

import (
	"encoding/json"
	"net/http"

	"github.com/AlexZinkM/voice-wallet/internal/model"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	writeJSON(w, status, model.ErrorResponse{Error: err.Error(), Code: code})
}

// allowMethod rejects requests with any other method
func allowMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method {
		return true
	}
	w.Header().Set("Allow", method)
	writeJSON(w, http.StatusMethodNotAllowed, model.ErrorResponse{
		Error: "Method not allowed. Should be " + method,
		Code:  model.ErrorCodeMethodDenied,
	})
	return false
}
