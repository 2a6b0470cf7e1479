package config

import (
	"encoding/json"
	"net/http"

	"github.com/crackit360/crackit360-api/internal/apperr"
	"github.com/sirupsen/logrus"
)

func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.WithError(err).Error("Failed to encode JSON response")
	}
}

// WriteError answers with {"detail": message} and the status derived from
// err. Internal errors are logged with the request context and never leak.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperr.Status(err)
	log := WithContext(r.Context()).WithFields(logrus.Fields{
		"method": r.Method,
		"path":   r.URL.Path,
		"status": status,
	})
	switch {
	case status >= http.StatusInternalServerError:
		log.WithError(err).Error("Request failed")
	default:
		log.WithError(err).Debug("Request rejected")
	}

	JSON(w, status, map[string]string{"detail": apperr.Message(err)})
}

// DecodeJSON decodes the request body into v, answering 400 on failure.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		WithContext(r.Context()).WithError(err).Warn("Invalid request body")
		WriteError(w, r, apperr.Validation("invalid request body"))
		return false
	}
	return true
}
