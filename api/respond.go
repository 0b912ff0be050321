package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"

	"github.com/rs/zerolog"

	"github.com/rpupo63/blogger-backend/errs"
)

type Responder struct {
	logger  zerolog.Logger
	devMode bool
}

func NewResponder(logger zerolog.Logger) Responder {
	return Responder{
		logger:  logger,
		devMode: os.Getenv("ENV") == "development",
	}
}

func (r Responder) WriteJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")

	jsonData, err := json.Marshal(data)
	if err != nil {
		r.logger.Error().Err(err).Msg("error marshaling response data")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if _, err := w.Write(jsonData); err != nil {
		r.logger.Error().Err(err).Msg("error writing response")
	}
}

// WriteStatusJSON writes the status code and then the JSON body.
func (r Responder) WriteStatusJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	r.WriteJSON(w, data)
}

// WriteError translates an error into a JSON body with a human-readable
// message. Unexpected errors are logged and reported as a generic 500;
// underlying causes are only serialized in development mode.
func (r Responder) WriteError(w http.ResponseWriter, err error) {
	var apiErr *errs.ApiErr

	// For unexpected errors, log and return generic internal error
	if !errors.As(err, &apiErr) {
		r.logger.Error().Msg(err.Error())
		response := map[string]any{
			"message": "Server error",
		}
		if r.devMode {
			response["error"] = err.Error()
		}
		r.WriteStatusJSON(w, http.StatusInternalServerError, response)
		return
	}

	response := map[string]any{
		"message": apiErr.Error(),
	}

	// Add field information if present (for validation errors)
	if apiErr.Field != "" {
		response["field"] = apiErr.Field
	}

	// Add the full error chain for debugging, development only
	if apiErr.Cause != nil {
		if r.devMode {
			response["error"] = apiErr.GetFullError()
		} else {
			response["error"] = apiErr.Cause.Error()
		}
	}

	r.WriteStatusJSON(w, apiErr.StatusCode, response)
}

// wrapDatabaseError wraps a database error with context information
func wrapDatabaseError(operation, entity string, cause error) error {
	return errs.NewDatabaseError(operation, entity, cause)
}
