package info

import (
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/drblury/hostweaver/probe"
	"github.com/drblury/hostweaver/responder"
)

// InfoProvider returns the payload that will be exposed by the version endpoint.
// The provider allows callers to inject their own source for build metadata or
// runtime diagnostics.
type InfoProvider func() any

// DocumentProvider returns a serialised OpenAPI document. It is usually backed
// by the document built at startup.
type DocumentProvider func() ([]byte, error)

// InfoOption follows the functional options pattern used by NewInfoHandler to
// configure optional collaborators such as the responder, document sources and
// probes.
type InfoOption func(*InfoHandler)

// TemplateDataProvider allows callers to replace the data passed to the
// documentation template at render time. Returning nil keeps page.
type TemplateDataProvider func(r *http.Request, page UIPage) any

const defaultProbeTimeout = 2 * time.Second

// ProbeFunc is executed to determine the outcome of liveness or readiness
// probes. Returning a non-nil error marks the probe as failed.
type ProbeFunc = probe.Func

var errDocumentNotConfigured = errors.New("openapi document provider not configured")

// InfoHandler serves everything around the API itself: the OpenAPI document
// in JSON and YAML, the documentation UI, build information and probes.
type InfoHandler struct {
	*responder.Responder
	title           string
	infoProvider    InfoProvider
	jsonProvider    DocumentProvider
	yamlProvider    DocumentProvider
	uiTemplate      *template.Template
	dataProvider    TemplateDataProvider
	probeTimeout    time.Duration
	livenessChecks  []ProbeFunc
	readinessChecks []ProbeFunc
	uiType          UIType
}

// NewInfoHandler constructs an InfoHandler rendering Swagger UI and reporting
// the binary's embedded build information.
func NewInfoHandler(opts ...InfoOption) *InfoHandler {
	ih := &InfoHandler{
		Responder:    responder.NewResponder(),
		title:        "API documentation",
		infoProvider: BuildInfoProvider(""),
		jsonProvider: func() ([]byte, error) {
			return nil, errDocumentNotConfigured
		},
		yamlProvider: func() ([]byte, error) {
			return nil, errDocumentNotConfigured
		},
		uiTemplate:   uiTemplates[UISwaggerUI],
		probeTimeout: defaultProbeTimeout,
		uiType:       UISwaggerUI,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(ih)
		}
	}
	return ih
}

// WithInfoResponder replaces the responder used to craft JSON responses and
// handle error reporting.
func WithInfoResponder(responder *responder.Responder) InfoOption {
	return func(ih *InfoHandler) {
		if responder != nil {
			ih.Responder = responder
		}
	}
}

// WithTitle sets the page title of the documentation UI.
func WithTitle(title string) InfoOption {
	return func(ih *InfoHandler) {
		if title != "" {
			ih.title = title
		}
	}
}

// WithInfoProvider swaps the default metadata provider with a user supplied
// implementation.
func WithInfoProvider(provider InfoProvider) InfoOption {
	return func(ih *InfoHandler) {
		if provider != nil {
			ih.infoProvider = provider
		}
	}
}

// WithOpenAPIProvider sets the source of the JSON document.
func WithOpenAPIProvider(provider DocumentProvider) InfoOption {
	return func(ih *InfoHandler) {
		if provider != nil {
			ih.jsonProvider = provider
		}
	}
}

// WithOpenAPIYAMLProvider sets the source of the YAML rendition.
func WithOpenAPIYAMLProvider(provider DocumentProvider) InfoOption {
	return func(ih *InfoHandler) {
		if provider != nil {
			ih.yamlProvider = provider
		}
	}
}

// WithUITemplate injects a custom html/template used for the documentation
// page. It receives UIPage unless WithUITemplateData says otherwise.
func WithUITemplate(tmpl *template.Template) InfoOption {
	return func(ih *InfoHandler) {
		if tmpl != nil {
			ih.uiTemplate = tmpl
		}
	}
}

// WithUITemplateData overrides the template data for each request.
func WithUITemplateData(provider TemplateDataProvider) InfoOption {
	return func(ih *InfoHandler) {
		ih.dataProvider = provider
	}
}

// WithProbeTimeout adjusts the maximum duration allowed for probe checks.
func WithProbeTimeout(timeout time.Duration) InfoOption {
	return func(ih *InfoHandler) {
		if timeout > 0 {
			ih.probeTimeout = timeout
		}
	}
}

// WithLivenessChecks replaces the default liveness checks with the supplied
// functions.
func WithLivenessChecks(checks ...ProbeFunc) InfoOption {
	return func(ih *InfoHandler) {
		ih.livenessChecks = filterProbes(checks)
	}
}

// WithReadinessChecks replaces the default readiness checks with the supplied
// functions.
func WithReadinessChecks(checks ...ProbeFunc) InfoOption {
	return func(ih *InfoHandler) {
		ih.readinessChecks = filterProbes(checks)
	}
}

// WithUIType selects the bundled documentation viewer. Unknown values fall
// back to Swagger UI.
func WithUIType(uiType UIType) InfoOption {
	return func(ih *InfoHandler) {
		tmpl, ok := uiTemplates[uiType]
		if !ok {
			uiType, tmpl = UISwaggerUI, uiTemplates[UISwaggerUI]
		}
		ih.uiType = uiType
		ih.uiTemplate = tmpl
	}
}

// UIType reports the documentation viewer in use.
func (ih *InfoHandler) UIType() UIType {
	return ih.uiType
}
