package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-formdoc/pkg/forms"
	"github.com/goliatone/go-formdoc/pkg/i18n"
	"github.com/goliatone/go-formdoc/pkg/model"
	"github.com/goliatone/go-formdoc/pkg/pdf"
	"github.com/goliatone/go-formdoc/pkg/render"
	"github.com/goliatone/go-formdoc/pkg/renderers/pdfdoc"
	"github.com/goliatone/go-formdoc/pkg/renderers/vanilla"
	"github.com/goliatone/go-formdoc/pkg/signature"
	"github.com/goliatone/go-formdoc/pkg/validation"
	"github.com/goliatone/go-formdoc/pkg/widgets"
	theme "github.com/goliatone/go-theme"
)

const (
	defaultRendererName = vanilla.Name
	defaultLanguage     = "de"
	defaultPDFLanguage  = "de"
)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithForms supplies the form registry. It is required.
func WithForms(registry *forms.Registry) Option {
	return func(o *Orchestrator) {
		o.forms = registry
	}
}

// WithModelBuilder injects a custom form model builder.
func WithModelBuilder(builder model.Builder) Option {
	return func(o *Orchestrator) {
		o.builder = builder
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = strings.TrimSpace(name)
	}
}

// WithWidgetRegistry replaces the widget registry that resolves field widgets.
func WithWidgetRegistry(registry *widgets.Registry) Option {
	return func(o *Orchestrator) {
		o.widgets = registry
	}
}

// WithDecorators registers decorators that run after widget resolution.
func WithDecorators(decorators ...model.Decorator) Option {
	return func(o *Orchestrator) {
		o.decorators = append(o.decorators, decorators...)
	}
}

// WithDefaultLanguage sets the UI language used when a request has none.
func WithDefaultLanguage(lang string) Option {
	return func(o *Orchestrator) {
		if lang = strings.TrimSpace(lang); lang != "" {
			o.defaultLanguage = lang
		}
	}
}

// WithPDFLanguage sets the language documents are printed in.
func WithPDFLanguage(lang string) Option {
	return func(o *Orchestrator) {
		if lang = strings.TrimSpace(lang); lang != "" {
			o.pdfLanguage = lang
		}
	}
}

// WithPDFOptions sets the base document options. Request options are layered
// on top.
func WithPDFOptions(opts pdf.Options) Option {
	return func(o *Orchestrator) {
		o.pdfOptions = opts
	}
}

// WithValidatedRenderers names the renderers whose output requires every
// required field to be filled. Defaults to the PDF renderer.
func WithValidatedRenderers(names ...string) Option {
	return func(o *Orchestrator) {
		o.validated = make(map[string]bool, len(names))
		for _, name := range names {
			o.validated[strings.TrimSpace(name)] = true
		}
	}
}

// WithTheme sets the theme configuration handed to renderers that have none.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(o *Orchestrator) {
		o.theme = cfg
	}
}

// WithLogger sets the logger.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Orchestrator coordinates the pipeline from a registered form to rendered
// output. Missing dependencies are filled with the bundled implementations.
type Orchestrator struct {
	forms           *forms.Registry
	builder         model.Builder
	registry        *render.Registry
	widgets         *widgets.Registry
	decorators      []model.Decorator
	defaultRenderer string
	defaultLanguage string
	pdfLanguage     string
	pdfOptions      pdf.Options
	validated       map[string]bool
	theme           *theme.RendererConfig
	logger          logrus.FieldLogger
	initialiseErr   error
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
		defaultLanguage: defaultLanguage,
		pdfLanguage:     defaultPDFLanguage,
		validated:       map[string]bool{pdfdoc.Name: true},
		logger:          logrus.StandardLogger(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes one render of a registered form.
type Request struct {
	// Form is the key of the form to render.
	Form string

	// Renderer names the renderer to use. If empty, the orchestrator falls back
	// to the configured default renderer.
	Renderer string

	// Locale is the UI language. Documents are printed in the PDF language
	// regardless.
	Locale string

	// RenderOptions carries submitted values, errors and the signature.
	RenderOptions render.RenderOptions
}

// Result is the rendered output together with the model it was built from.
type Result struct {
	Output      []byte
	ContentType string
	Renderer    string
	Form        model.FormModel
}

// Localized is a form model built for one language.
type Localized struct {
	Source  *forms.Form
	Model   model.FormModel
	Catalog i18n.Catalog
	Lang    string
}

// ValidationError reports missing required fields. Labels come from the UI
// language so the message can be shown next to the form.
type ValidationError struct {
	Form    model.FormModel
	Result  validation.Result
	Catalog i18n.Catalog
	Locale  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("orchestrator: required fields missing: %s", strings.Join(e.Result.Labels(), ", "))
}

// Message is the localized summary followed by one line per missing field.
func (e *ValidationError) Message() string {
	return e.Result.Message(e.Catalog, e.Locale)
}

// Mapping converts the failure into per-field and form-level errors.
func (e *ValidationError) Mapping() render.ErrorMapping {
	return render.FromValidation(e.Result, e.Catalog, e.Locale)
}

// Forms exposes the form registry.
func (o *Orchestrator) Forms() *forms.Registry {
	return o.forms
}

// Renderers exposes the renderer registry.
func (o *Orchestrator) Renderers() *render.Registry {
	return o.registry
}

// DefaultLanguage returns the UI language used when none is requested.
func (o *Orchestrator) DefaultLanguage() string {
	return o.defaultLanguage
}

// PDFLanguage returns the document language.
func (o *Orchestrator) PDFLanguage() string {
	return o.pdfLanguage
}

// Localize builds the decorated model of key in locale. With document set the
// catalog of the PDF language is used instead of the UI catalog.
func (o *Orchestrator) Localize(key, locale string, document bool) (*Localized, error) {
	if err := o.initialiseErr; err != nil {
		return nil, err
	}
	source, err := o.forms.Get(key)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}

	locale = o.locale(locale)
	var (
		catalog i18n.Catalog
		lang    string
	)
	if document {
		catalog, lang = source.PDFCatalog(o.pdfLanguage, locale)
	} else {
		catalog, lang = source.Catalog(locale)
	}

	form, err := o.builder.Build(source.Key, source.Document, catalog, lang)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: build form model: %w", err)
	}
	form.HasLayout = source.Layout != nil

	if err := o.applyDecorators(&form); err != nil {
		return nil, err
	}
	return &Localized{Source: source, Model: form, Catalog: catalog, Lang: lang}, nil
}

// Validate checks values against the required fields of key, labelled in
// locale. A failure is returned as *ValidationError.
func (o *Orchestrator) Validate(key, locale string, values map[string]any) (*Localized, error) {
	ui, err := o.Localize(key, locale, false)
	if err != nil {
		return nil, err
	}
	result := validation.ValidateRequired(ui.Model, values)
	if !result.Valid {
		return ui, &ValidationError{
			Form:    ui.Model,
			Result:  result,
			Catalog: ui.Catalog,
			Locale:  ui.Lang,
		}
	}
	return ui, nil
}

// Generate renders req.Form with the requested renderer. Renderers that need
// complete data are only invoked once every required field is filled.
func (o *Orchestrator) Generate(ctx context.Context, req Request) (*Result, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Form) == "" {
		return nil, errors.New("orchestrator: form key is required")
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	opts := req.RenderOptions
	if o.validated[renderer.Name()] {
		if _, err := o.Validate(req.Form, req.Locale, opts.Values); err != nil {
			return nil, err
		}
	}

	document := renderer.Name() == pdfdoc.Name
	localized, err := o.Localize(req.Form, req.Locale, document)
	if err != nil {
		return nil, err
	}
	o.prepareOptions(&opts, localized, req.Locale, document)

	output, err := renderer.Render(ctx, localized.Model, opts)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}

	o.logger.WithFields(logrus.Fields{
		"form":     localized.Model.Key,
		"renderer": renderer.Name(),
		"locale":   opts.Locale,
	}).Debug("form rendered")

	return &Result{
		Output:      output,
		ContentType: renderer.ContentType(),
		Renderer:    renderer.Name(),
		Form:        localized.Model,
	}, nil
}

func (o *Orchestrator) prepareOptions(opts *render.RenderOptions, localized *Localized, locale string, document bool) {
	if document {
		opts.Locale = localized.Lang
	} else if opts.Locale == "" {
		opts.Locale = o.locale(locale)
	}
	if opts.Direction == "" {
		opts.Direction = render.DirectionFor(opts.Locale)
	}
	if opts.Catalog == nil {
		opts.Catalog = localized.Catalog
	}
	if opts.Layout == nil {
		opts.Layout = localized.Source.Layout
	}
	if opts.Assets == nil {
		opts.Assets = localized.Source.Assets
	}
	if opts.Theme == nil {
		opts.Theme = o.theme
	}

	if !localized.Model.Misc.SignatureRequired {
		opts.Signature = nil
	}

	pdfOpts := o.pdfOptions.Merge(opts.PDFOptions)
	if sig := opts.Signature; !sig.Empty() && sig.Meta.Source == signature.SourceUpload && opts.SignatureSizing != (signature.Sizing{}) {
		pdfOpts = pdfOpts.WithSignature(opts.SignatureSizing.Options(sig.Meta))
	}
	opts.PDFOptions = pdfOpts
}

func (o *Orchestrator) locale(locale string) string {
	if locale = strings.TrimSpace(locale); locale != "" {
		return strings.ToLower(locale)
	}
	return o.defaultLanguage
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := strings.TrimSpace(name)
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}

	renderer, err := o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDecorators(form *model.FormModel) error {
	if o.widgets != nil {
		if err := o.widgets.Decorate(form); err != nil {
			return fmt.Errorf("orchestrator: resolve widgets: %w", err)
		}
	}
	for _, decorator := range o.decorators {
		if decorator == nil {
			continue
		}
		if err := decorator.Decorate(form); err != nil {
			return fmt.Errorf("orchestrator: decorate form: %w", err)
		}
	}
	return nil
}

func (o *Orchestrator) applyDefaults() {
	if o.forms == nil {
		o.initialiseErr = errors.New("orchestrator: form registry is required")
		return
	}
	if o.builder == nil {
		o.builder = model.NewBuilder()
	}
	if o.widgets == nil {
		o.widgets = widgets.NewRegistry()
	}
	if o.registry == nil {
		html, err := vanilla.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
			return
		}
		o.registry, err = render.NewRegistry(html, pdfdoc.New(pdfdoc.WithLogger(o.logger)))
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: renderer registry: %w", err)
			return
		}
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
}
