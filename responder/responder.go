package responder

import (
	"log/slog"
	"net/http"
)

const (
	jsonContentType = "application/json"
	textContentType = "text/plain; charset=utf-8"
)

// ErrorClassifierFunc maps an error to the HTTP status it should be answered
// with. Returning handled=false leaves the error to the 500 fallback.
type ErrorClassifierFunc func(err error) (status int, handled bool)

// ResponderOption configures a Responder.
type ResponderOption func(*Responder)

// StatusMetadata controls how errors answered with one status code are
// logged. Zero fields fall back to the status text and slog.LevelError.
type StatusMetadata struct {
	Title    string
	LogLevel slog.Leveler
	LogMsg   string
}

// Responder writes JSON and text bodies and turns errors into ErrorResponse
// payloads. Every error body carries a trace id that is repeated on the
// matching log record.
type Responder struct {
	log             *slog.Logger
	statusMetadata  map[int]StatusMetadata
	errorClassifier ErrorClassifierFunc
}

// NewResponder returns a Responder logging through slog.Default.
func NewResponder(opts ...ResponderOption) *Responder {
	r := &Responder{
		log: slog.Default(),
		statusMetadata: map[int]StatusMetadata{
			http.StatusBadRequest:          {LogLevel: slog.LevelWarn},
			http.StatusNotFound:            {LogLevel: slog.LevelInfo},
			http.StatusMethodNotAllowed:    {LogLevel: slog.LevelInfo},
			http.StatusInternalServerError: {LogLevel: slog.LevelError},
			http.StatusServiceUnavailable:  {LogLevel: slog.LevelWarn},
			http.StatusGatewayTimeout:      {LogLevel: slog.LevelWarn},
		},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// WithLogger sets the logger used for error records.
func WithLogger(logger *slog.Logger) ResponderOption {
	return func(r *Responder) {
		if logger != nil {
			r.log = logger
		}
	}
}

// WithErrorClassifier installs the classifier consulted by HandleErrors.
func WithErrorClassifier(classifier ErrorClassifierFunc) ResponderOption {
	return func(r *Responder) {
		r.errorClassifier = classifier
	}
}

// WithStatusMetadata replaces the metadata for status.
func WithStatusMetadata(status int, meta StatusMetadata) ResponderOption {
	return func(r *Responder) {
		if r.statusMetadata == nil {
			r.statusMetadata = make(map[int]StatusMetadata)
		}
		r.statusMetadata[status] = meta
	}
}

// Logger returns the logger errors are reported to.
func (r *Responder) Logger() *slog.Logger {
	return r.logger()
}

func (r *Responder) logger() *slog.Logger {
	if r == nil || r.log == nil {
		return slog.Default()
	}
	return r.log
}

func (r *Responder) classifyError(err error) (int, bool) {
	if r.errorClassifier == nil {
		return 0, false
	}
	return r.errorClassifier(err)
}
