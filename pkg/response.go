package pkg

import (
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"
)

var ContentType = struct {
	JSON string
	Text string
	PDF  string
}{
	JSON: "application/json",
	Text: "text/plain",
	PDF:  "application/pdf",
}

// MessageResponse is the generic body for responses that carry no resource
type MessageResponse struct {
	Message string `json:"message"`
}

func WriteResponseBytes(w http.ResponseWriter, contentType string, message []byte, statusCode int) {
	if contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}

	w.WriteHeader(statusCode)
	if _, err := w.Write(message); err != nil {
		log.Errorf("failed to write response [%d bytes]: %s", len(message), err)
	}
}

func WriteTextResponseOK(w http.ResponseWriter, message string) {
	WriteResponseBytes(w, ContentType.Text, []byte(message), http.StatusOK)
}

// WriteJSON marshals v and writes it with the given status code
func WriteJSON(w http.ResponseWriter, v any, statusCode int) {
	respJson, err := json.Marshal(v)
	if err != nil {
		log.Errorf("failed to marshal response %T: %s", v, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	WriteResponseBytes(w, ContentType.JSON, respJson, statusCode)
}

func WriteMessage(w http.ResponseWriter, message string, statusCode int) {
	WriteJSON(w, MessageResponse{Message: message}, statusCode)
}

// WritePDF sends the document as an attachment download
func WritePDF(w http.ResponseWriter, fileName string, doc []byte) {
	w.Header().Set("Content-Disposition", `attachment; filename="`+fileName+`"`)
	WriteResponseBytes(w, ContentType.PDF, doc, http.StatusOK)
}
