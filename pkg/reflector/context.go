package reflector

import (
	"log/slog"
	"net/url"
	"strings"

	"github.com/getmockd/wsdlkit/pkg/logging"
	"github.com/getmockd/wsdlkit/pkg/service"
)

// Context is what a reflection pass knows about its surroundings.
type Context struct {
	// Namespace is the target namespace for generated schema and WSDL
	// constructs.
	Namespace string
	// Style is the import style the class declares.
	Style service.Style
	// BaseURI is the address relative class locations resolve against.
	BaseURI string
	Logger  *slog.Logger
}

// NewContext returns the context for reflecting class.
func NewContext(class *service.Class, baseURI string, logger *slog.Logger) Context {
	return Context{
		Namespace: class.Namespace,
		Style:     class.Style,
		BaseURI:   baseURI,
		Logger:    logging.OrNop(logger),
	}
}

// CombineURI resolves ref against the base URI. Without a base, or when either
// side fails to parse, ref is returned as is.
func (c Context) CombineURI(ref string) string {
	if c.BaseURI == "" {
		return ref
	}
	if ref == "" {
		return c.BaseURI
	}
	base, err := url.Parse(c.BaseURI)
	if err != nil {
		return ref
	}
	rel, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	if !strings.HasSuffix(base.Path, "/") && !strings.HasPrefix(ref, "/") && !rel.IsAbs() {
		base.Path += "/"
	}
	return base.ResolveReference(rel).String()
}
