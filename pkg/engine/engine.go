package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/getmockd/wsdlkit/pkg/config"
	"github.com/getmockd/wsdlkit/pkg/description"
	"github.com/getmockd/wsdlkit/pkg/importer"
	"github.com/getmockd/wsdlkit/pkg/logging"
	"github.com/getmockd/wsdlkit/pkg/reflector"
	"github.com/getmockd/wsdlkit/pkg/schema"
	"github.com/getmockd/wsdlkit/pkg/service"
)

// Engine runs reflection and import with the plugins a configuration selects.
// Plugins are resolved once in New.
type Engine struct {
	cfg    *config.Config
	logger *slog.Logger

	reflectProtocols []reflector.Protocol
	importProtocols  []importer.Protocol
}

// New resolves every plugin named by cfg against reg. A nil cfg selects the
// defaults and a nil reg the built-in plugins.
func New(cfg *config.Config, reg *Registry, logger *slog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if reg == nil {
		reg = DefaultRegistry()
	}
	e := &Engine{cfg: cfg, logger: logging.Component(logger, "engine")}

	params, err := resolve(reg, reg.mimeParameters, cfg.Reflect.MimeParameters)
	if err != nil {
		return nil, fmt.Errorf("reflect.mimeParameters: %w", err)
	}
	returns, err := resolve(reg, reg.mimeReturns, cfg.Reflect.MimeReturns)
	if err != nil {
		return nil, fmt.Errorf("reflect.mimeReturns: %w", err)
	}
	paramReflectors := make([]reflector.MimeParameterReflector, 0, len(params))
	for _, f := range params {
		paramReflectors = append(paramReflectors, f())
	}
	returnReflectors := make([]reflector.MimeReturnReflector, 0, len(returns))
	for _, f := range returns {
		returnReflectors = append(returnReflectors, f())
	}
	reflectFactories, err := resolve(reg, reg.reflectProtocols, cfg.Reflect.Protocols)
	if err != nil {
		return nil, fmt.Errorf("reflect.protocols: %w", err)
	}
	for _, f := range reflectFactories {
		e.reflectProtocols = append(e.reflectProtocols, f(paramReflectors, returnReflectors))
	}

	mimes, err := resolve(reg, reg.mimeImporters, cfg.Import.MimeImporters)
	if err != nil {
		return nil, fmt.Errorf("import.mimeImporters: %w", err)
	}
	mimeImporters := make([]importer.MimeImporter, 0, len(mimes))
	for _, f := range mimes {
		mimeImporters = append(mimeImporters, f())
	}
	selector, err := cfg.Import.Selector()
	if err != nil {
		return nil, fmt.Errorf("import.transportRules: %w", err)
	}
	importFactories, err := resolve(reg, reg.importProtocols, cfg.Import.Protocols)
	if err != nil {
		return nil, fmt.Errorf("import.protocols: %w", err)
	}
	for _, f := range importFactories {
		e.importProtocols = append(e.importProtocols, f(selector, mimeImporters))
	}

	return e, nil
}

// Config returns the configuration the engine was built from.
func (e *Engine) Config() *config.Config { return e.cfg }

// ReflectProtocols returns the protocol names in reflection order.
func (e *Engine) ReflectProtocols() []string {
	names := make([]string, 0, len(e.reflectProtocols))
	for _, p := range e.reflectProtocols {
		names = append(names, p.Name())
	}
	return names
}

// ImportProtocols returns the protocol names in selection order.
func (e *Engine) ImportProtocols() []string {
	names := make([]string, 0, len(e.importProtocols))
	for _, p := range e.importProtocols {
		names = append(names, p.Name())
	}
	return names
}

// ReflectResult summarizes a reflection run.
type ReflectResult struct {
	RunID    string
	Bindings []string
	Warnings schema.Warnings
}

// Reflect runs every configured protocol over class, writing into defs, and
// compiles the resulting schema set. Schema warnings are returned on the
// result; they are not errors.
func (e *Engine) Reflect(ctx context.Context, defs *description.Definitions, class *service.Class) (*ReflectResult, error) {
	if class == nil {
		return nil, reflector.ErrNoClass
	}
	res := &ReflectResult{RunID: uuid.NewString()}
	log := logging.Run(e.logger, res.RunID).With("class", class.Name)
	log.Info("reflect started", "protocols", e.ReflectProtocols())

	r := reflector.New(defs, log)
	for _, p := range e.reflectProtocols {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rctx := reflector.NewContext(class, e.cfg.Reflect.BaseURI, log.With("protocol", p.Name()))
		if err := r.Reflect(p, class, rctx); err != nil {
			log.Error("reflect failed", "protocol", p.Name(), "error", err)
			return nil, err
		}
	}

	for _, b := range defs.Bindings() {
		res.Bindings = append(res.Bindings, b.Name)
	}
	res.Warnings = schema.NewCompiler(log).Compile(defs.Types)
	log.Info("reflect finished", "bindings", len(res.Bindings), "schema_warnings", len(res.Warnings))
	return res, nil
}

// ImportResult is an import result tagged with its run.
type ImportResult struct {
	*importer.Result
	RunID string
}

// Import imports every binding of defs with the configured protocols. On a
// fatal error the partial result is returned with it.
func (e *Engine) Import(ctx context.Context, defs *description.Definitions) (*ImportResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := &ImportResult{RunID: uuid.NewString()}
	log := logging.Run(e.logger, out.RunID).With("definitions", defs.Name)
	log.Info("import started", "protocols", e.ImportProtocols())

	im := importer.New(e.importProtocols, importer.Options{
		Style:              service.Style(e.cfg.Import.Style),
		BaseURL:            e.cfg.Import.BaseURL,
		URLConfigKey:       e.cfg.Import.URLConfigKey,
		FailOnSchemaErrors: e.cfg.Import.FailOnSchemaErrors,
	}, log)
	res, err := im.Import(defs)
	out.Result = res
	if err != nil {
		log.Error("import failed", "error", err)
		return out, err
	}
	return out, nil
}
