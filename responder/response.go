package responder

import (
	"net/http"

	"github.com/drblury/hostweaver/jsonutil"
)

// TraceIDHeader repeats the trace id of an error body as a response header.
const TraceIDHeader = "X-Trace-Id"

// HandleAPIError answers with status and an ErrorResponse built from err, and
// logs the error under the same trace id. A nil err writes nothing.
func (r *Responder) HandleAPIError(w http.ResponseWriter, req *http.Request, status int, err error, logMsg ...string) {
	if err == nil {
		return
	}

	body := ErrorResponse{Error: err.Error(), TraceID: newTraceID()}
	r.logError(req, r.metadataFor(status), status, err, body, logMsg)

	if w != nil {
		w.Header().Set(TraceIDHeader, body.TraceID)
	}
	r.respondWithJSON(w, status, body)
}

// HandleInternalServerError answers with 500.
func (r *Responder) HandleInternalServerError(w http.ResponseWriter, req *http.Request, err error, logMsg ...string) {
	r.HandleAPIError(w, req, http.StatusInternalServerError, err, logMsg...)
}

// HandleServiceUnavailableError answers with 503, used for failed probes.
func (r *Responder) HandleServiceUnavailableError(w http.ResponseWriter, req *http.Request, err error, logMsg ...string) {
	r.HandleAPIError(w, req, http.StatusServiceUnavailable, err, logMsg...)
}

// HandleErrors answers with the status chosen by the error classifier, or
// 500 when the classifier is absent or declines.
func (r *Responder) HandleErrors(w http.ResponseWriter, req *http.Request, err error, msgs ...string) {
	if err == nil {
		return
	}

	status := http.StatusInternalServerError
	if classified, handled := r.classifyError(err); handled {
		status = classified
	}
	r.HandleAPIError(w, req, status, err, msgs...)
}

// RespondWithJSON encodes v followed by a newline.
func (r *Responder) RespondWithJSON(w http.ResponseWriter, _ *http.Request, status int, v any) {
	r.respondWithJSON(w, status, v)
}

// RespondWithText writes body as UTF-8 plain text.
func (r *Responder) RespondWithText(w http.ResponseWriter, _ *http.Request, status int, body string) {
	r.write(w, status, textContentType, []byte(body))
}

// RespondWithBytes writes a pre-encoded body. An empty contentType means JSON.
func (r *Responder) RespondWithBytes(w http.ResponseWriter, _ *http.Request, status int, contentType string, body []byte) {
	if contentType == "" {
		contentType = jsonContentType
	}
	r.write(w, status, contentType, body)
}

func (r *Responder) respondWithJSON(w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}

	body, err := jsonutil.Marshal(payload)
	if err != nil {
		r.logger().Error("failed to encode response", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	if len(body) == 0 || body[len(body)-1] != '\n' {
		body = append(body, '\n')
	}

	r.write(w, status, jsonContentType, body)
}

func (r *Responder) write(w http.ResponseWriter, status int, contentType string, body []byte) {
	if w == nil {
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		r.logger().Error("failed to write response", "error", err)
	}
}
