package responder

import (
	"context"
	"log/slog"
	"net/http"
)

// ErrorResponse is the JSON body written for every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	TraceID string `json:"traceId,omitempty"`
}

// metadataFor resolves the metadata for status with every field populated.
func (r *Responder) metadataFor(status int) StatusMetadata {
	var meta StatusMetadata
	if r != nil {
		meta = r.statusMetadata[status]
	}
	if meta.Title == "" {
		meta.Title = http.StatusText(status)
	}
	if meta.LogMsg == "" {
		meta.LogMsg = meta.Title
	}
	if meta.LogLevel == nil {
		meta.LogLevel = slog.LevelError
	}
	return meta
}

func (r *Responder) logError(req *http.Request, meta StatusMetadata, status int, err error, body ErrorResponse, msgs []string) {
	ctx := context.Background()
	attrs := []any{
		"error", err.Error(),
		"traceId", body.TraceID,
		"status", status,
		"title", meta.Title,
	}
	if req != nil {
		ctx = req.Context()
		if req.URL != nil {
			attrs = append(attrs, "instance", req.URL.RequestURI())
		}
	}
	if len(msgs) > 0 {
		attrs = append(attrs, "logMessages", msgs)
	}
	r.logger().Log(ctx, meta.LogLevel.Level(), meta.LogMsg, attrs...)
}
