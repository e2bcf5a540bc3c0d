package info

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
)

// UIType selects the documentation viewer rendered by MountUI.
type UIType string

const (
	UISwaggerUI UIType = "swaggerui"
	UIRedoc     UIType = "redoc"
	UIScalar    UIType = "scalar"
	UIStoplight UIType = "stoplight"
)

// ErrUnknownUIType is returned by ParseUIType for unsupported names.
var ErrUnknownUIType = errors.New("info: unknown documentation ui")

// ErrInvalidMount is returned by MountUI when the paths cannot be mounted.
var ErrInvalidMount = errors.New("info: invalid documentation mount")

//go:embed assets/*.html
var pageFS embed.FS

//go:embed assets/static
var assetFS embed.FS

var uiTemplates = map[UIType]*template.Template{
	UISwaggerUI: mustPage("swaggerui"),
	UIRedoc:     mustPage("redoc"),
	UIScalar:    mustPage("scalar"),
	UIStoplight: mustPage("stoplight"),
}

func mustPage(name string) *template.Template {
	return template.Must(template.New(name+".html").ParseFS(pageFS, "assets/"+name+".html"))
}

// ParseUIType maps a configuration value onto a UIType. The empty string
// selects Swagger UI.
func ParseUIType(name string) (UIType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "swaggerui", "swagger-ui", "swagger_ui", "swagger":
		return UISwaggerUI, nil
	case "redoc":
		return UIRedoc, nil
	case "scalar":
		return UIScalar, nil
	case "stoplight", "elements":
		return UIStoplight, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownUIType, name)
	}
}

// UIPage is the default data handed to the documentation template.
type UIPage struct {
	Title string
	// DocumentURL is written verbatim into the page and resolved by the
	// browser relative to the UI base path.
	DocumentURL string
}

// MountUI registers the documentation viewer under uiBasePath. The page is
// served at the base path with a trailing slash, the bare base path redirects
// there, and static helpers live below "<base>assets/". documentURL is how
// the page locates the OpenAPI document, usually relative such as
// "../openapi.json".
func (ih *InfoHandler) MountUI(mux *http.ServeMux, uiBasePath, documentURL string) error {
	if mux == nil {
		return fmt.Errorf("%w: mux is nil", ErrInvalidMount)
	}
	trimmed := strings.Trim(strings.TrimSpace(uiBasePath), "/")
	if trimmed == "" {
		return fmt.Errorf("%w: ui path %q must name a sub-path", ErrInvalidMount, uiBasePath)
	}
	if strings.TrimSpace(documentURL) == "" {
		return fmt.Errorf("%w: document url is empty", ErrInvalidMount)
	}

	base := "/" + trimmed + "/"
	static, err := fs.Sub(assetFS, "assets/static")
	if err != nil {
		return err
	}

	routes := []struct {
		pattern string
		handler http.Handler
	}{
		{pattern: "GET " + base + "{$}", handler: ih.UIHandler(documentURL)},
		{pattern: "GET /" + trimmed, handler: http.RedirectHandler(base, http.StatusMovedPermanently)},
		{pattern: "GET " + base + "assets/", handler: http.StripPrefix(base+"assets/", http.FileServerFS(static))},
	}
	for _, route := range routes {
		if err := register(mux, route.pattern, route.handler); err != nil {
			return err
		}
	}
	return nil
}

// UIHandler renders the configured documentation page pointing at
// documentURL.
func (ih *InfoHandler) UIHandler(documentURL string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ih.uiTemplate == nil {
			ih.HandleInternalServerError(w, r, errors.New("documentation template not configured"), "failed to render documentation ui")
			return
		}

		page := UIPage{Title: ih.title, DocumentURL: documentURL}
		var data any = page
		if ih.dataProvider != nil {
			if custom := ih.dataProvider(r, page); custom != nil {
				data = custom
			}
		}

		var buf bytes.Buffer
		if err := ih.uiTemplate.Execute(&buf, data); err != nil {
			ih.HandleInternalServerError(w, r, err, "failed to render documentation ui")
			return
		}
		ih.RespondWithBytes(w, r, http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
	}
}

// ServeMux panics on conflicting patterns; mounting reports them instead.
func register(mux *http.ServeMux, pattern string, handler http.Handler) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: %v", ErrInvalidMount, rec)
		}
	}()
	mux.Handle(pattern, handler)
	return nil
}
