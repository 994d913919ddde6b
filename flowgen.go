// Package flowgen is the public entry point of spec §1: it wires the
// lowering phase (flowparser, extract) to the raising phase (finalize,
// emit) into the single PrintFromFlowTypes call a host makes per
// GraphQL-compiler artifact.
//
// The package itself is new — the teacher never exposes one call that
// drives its whole pipeline, callers assemble a *graphql.Schema from many
// SchemaBuilder calls instead — but the shape of this file is grounded on
// builder.go's schemaBuilder struct and options.go's functional-options
// convention: a small struct carrying the few things every invocation
// needs (here, a logger), configured by Option values rather than a
// constructor with a growing parameter list.
package flowgen

import (
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shyptr/flowgen/emit"
	"github.com/shyptr/flowgen/extract"
	"github.com/shyptr/flowgen/ferrors"
	"github.com/shyptr/flowgen/finalize"
	"github.com/shyptr/flowgen/flowparser"
	"github.com/shyptr/flowgen/model"
	"go.uber.org/zap"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// validatorSingleton lazily builds the package's *validator.Validate,
// grounded on schemabuilder/validator.go's sync.Once pattern.
func validatorSingleton() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
	})
	return validate
}

// Option configures a Printer.
type Option func(*printerOptions)

type printerOptions struct {
	logger *zap.Logger
}

// WithLogger attaches a *zap.Logger an invocation will use for
// diagnostics (spec §5: no I/O beyond what the host opts into). A nil
// logger, or never calling WithLogger at all, keeps the core silent.
func WithLogger(logger *zap.Logger) Option {
	return func(o *printerOptions) {
		o.logger = logger
	}
}

// NewValidate returns the validator this package uses to check a
// PrintConfig's optional fields before an invocation runs, grounded on
// the teacher's schemabuilder/validator.go singleton.
func NewValidate() *validator.Validate {
	return validatorSingleton()
}

// Printer is a configured, reusable entry point into the pipeline. It
// carries no per-invocation state (spec §5: no persistent state across
// calls) — only the logger every invocation forwards to extract.New.
type Printer struct {
	logger *zap.Logger
}

// New builds a Printer from the supplied options.
func New(opts ...Option) *Printer {
	o := &printerOptions{}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	return &Printer{logger: o.logger}
}

// PrintFromFlowTypes runs the full pipeline of spec §1 over one flow-typed
// source blob: parse, lower to an IntermediateState, raise to a
// FullState, then emit the target-language source text.
//
// A non-nil error is always a *ferrors.Error — parse failures surface as
// ferrors.ParseError, a document with no variables/response/fragment root
// as ferrors.NoExtractableOperationsFound, and so on (spec §6).
func (p *Printer) PrintFromFlowTypes(source string, opType model.OperationType, config model.PrintConfig) (string, error) {
	if config.Connection != nil {
		if err := NewValidate().Struct(config.Connection); err != nil {
			return "", ferrors.New(ferrors.ObjectPathEmpty, "print config's connection option is invalid: %s", err)
		}
	}

	doc, err := flowparser.Parse(source)
	if err != nil {
		p.logger.Warn("could not parse flow type source", zap.Error(err))
		return "", ferrors.Wrap(err, "could not parse flow type source")
	}

	intermediate, err := extract.New(p.logger).Extract(doc, opType)
	if err != nil {
		return "", err
	}

	full, err := finalize.FinalizeState(intermediate)
	if err != nil {
		return "", err
	}

	return emit.Print(full, opType, config)
}

// PrintFromFlowTypes runs the pipeline with a default Printer (no
// logger). Most callers that don't need diagnostics can use this
// directly instead of constructing a Printer.
func PrintFromFlowTypes(source string, opType model.OperationType, config model.PrintConfig) (string, error) {
	return defaultPrinter.PrintFromFlowTypes(source, opType, config)
}

var defaultPrinter = New()
