package vanilla

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-formdoc/pkg/model"
	"github.com/goliatone/go-formdoc/pkg/render"
	"github.com/goliatone/go-formdoc/pkg/signature"
	"github.com/goliatone/go-formdoc/pkg/widgets"
)

type pageView struct {
	Lang       string               `json:"lang"`
	Dir        string               `json:"dir"`
	Title      string               `json:"title"`
	FormKey    string               `json:"form_key"`
	Action     string               `json:"action"`
	Languages  []render.Language    `json:"languages"`
	Forms      []render.FormLink    `json:"forms"`
	Sections   []sectionView        `json:"sections"`
	City       fieldView            `json:"city"`
	Date       fieldView            `json:"date"`
	Signature  signatureView        `json:"signature"`
	Errors     []string             `json:"errors"`
	Message    string               `json:"message"`
	Download   string               `json:"download"`
	Hidden     []render.HiddenField `json:"hidden"`
	Text       map[string]string    `json:"text"`
	ThemeStyle string               `json:"theme_style"`
	Stylesheet string               `json:"stylesheet"`
	Script     string               `json:"script"`
}

type sectionView struct {
	Key    string      `json:"key"`
	Title  string      `json:"title"`
	Fields []fieldView `json:"fields"`
}

type fieldView struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Label       string       `json:"label"`
	Widget      string       `json:"widget"`
	Value       string       `json:"value"`
	Checked     bool         `json:"checked"`
	Required    bool         `json:"required"`
	Rows        string       `json:"rows"`
	Placeholder string       `json:"placeholder"`
	HelpHTML    string       `json:"help_html"`
	Options     []optionView `json:"options"`
	Errors      []string     `json:"errors"`
}

type optionView struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

type signatureView struct {
	Enabled   bool   `json:"enabled"`
	Source    string `json:"source"`
	KeepRatio bool   `json:"keep_ratio"`
	WidthCM   string `json:"width_cm"`
	HeightCM  string `json:"height_cm"`
	ScaleMode string `json:"scale_mode"`
	Align     string `json:"align"`
	Trim      bool   `json:"trim"`
	MinCM     string `json:"min_cm"`
	MaxCM     string `json:"max_cm"`
}

// uiText lists the catalog keys the templates use with their fallbacks. The
// templates address them with dots replaced by underscores.
var uiText = map[string]string{
	"nav.language":          "Sprache",
	"nav.form":              "Formular",
	"field.ort":             "Ort",
	"field.datum":           "Datum",
	"signature.title":       "Unterschrift",
	"signature.mode.draw":   "Mit der Maus zeichnen",
	"signature.mode.upload": "Bild hochladen",
	"signature.size":        "Größe der Unterschrift",
	"signature.keep_ratio":  "Seitenverhältnis beibehalten",
	"signature.width_cm":    "Breite (cm)",
	"signature.height_cm":   "Höhe (cm)",
	"signature.scale_mode":  "Einpassen",
	"signature.align":       "Ausrichtung",
	"signature.trim":        "Weiße Ränder entfernen",
	"btn.clear":             "Löschen",
	"btn.create":            "PDF erstellen",
	"btn.download":          "PDF herunterladen",
}

func buildPage(form model.FormModel, opts render.RenderOptions, assetURL func(string) string) pageView {
	lang := strings.TrimSpace(opts.Locale)
	if lang == "" {
		lang = "de"
	}
	dir := opts.Direction
	if dir == "" {
		dir = render.DirectionFor(lang)
	}

	text := make(map[string]string, len(uiText))
	for key, fallback := range uiText {
		text[strings.ReplaceAll(key, ".", "_")] = opts.Text(key, fallback)
	}

	values := model.Values(opts.Values)
	page := pageView{
		Lang:      lang,
		Dir:       dir,
		Title:     form.Name,
		FormKey:   form.Key,
		Action:    "/forms/" + form.Key + "?lang=" + lang,
		Languages: opts.Languages,
		Forms:     opts.Forms,
		Errors:    opts.FormErrors,
		Message:   opts.Message,
		Download:  opts.Download,
		Text:      text,
	}
	if page.Title == "" {
		page.Title = form.Key
	}

	for _, section := range form.Sections {
		view := sectionView{Key: section.Key, Title: section.Title}
		for _, field := range section.Fields {
			view.Fields = append(view.Fields, buildField(field, values, opts.Errors[field.Name]))
		}
		page.Sections = append(page.Sections, view)
	}

	city := form.Misc.City
	if _, ok := opts.Values[model.KeyCity]; ok {
		city = values.String(model.KeyCity)
	}
	page.City = fieldView{
		ID: controlID(model.KeyCity), Name: model.KeyCity, Widget: widgets.WidgetText,
		Label: text["field_ort"], Value: city, Errors: opts.Errors[model.KeyCity],
	}
	page.Date = fieldView{
		ID: controlID(model.KeyDate), Name: model.KeyDate, Widget: widgets.WidgetText,
		Label: text["field_datum"], Value: values.String(model.KeyDate),
		Placeholder: form.Misc.DatePlaceholder, Errors: opts.Errors[model.KeyDate],
	}
	page.Signature = buildSignature(form, opts)

	page.Hidden = render.SortedHiddenFields(render.MergeHiddenFields(opts.Hidden,
		render.Hidden(render.HiddenLanguage, lang),
		render.Hidden(render.HiddenForm, form.Key),
	))

	page.ThemeStyle = render.CSSVarsStyle(opts.Theme)
	page.Stylesheet = assetURL(StylesheetName)
	page.Script = assetURL(SignatureScriptName)
	if opts.Theme != nil && opts.Theme.AssetURL != nil {
		if custom := opts.Theme.AssetURL("stylesheet"); custom != "" {
			page.Stylesheet = custom
		}
	}
	return page
}

func buildField(field model.Field, values model.Values, errs []string) fieldView {
	view := fieldView{
		ID:          controlID(field.Name),
		Name:        field.Name,
		Label:       field.Label,
		Widget:      field.Widget,
		Required:    field.Required,
		Placeholder: field.Placeholder,
		HelpHTML:    render.HelpHTML(field.Help),
		Errors:      errs,
	}
	if view.Widget == "" {
		view.Widget = widgets.WidgetText
	}

	raw, present := values[field.Name]
	switch {
	case present && view.Widget == widgets.WidgetCheckbox:
		view.Checked = model.Truthy(raw)
	case present:
		view.Value = values.String(field.Name)
	case field.Default != nil && view.Widget == widgets.WidgetCheckbox:
		view.Checked = model.Truthy(field.Default)
	case field.Default != nil:
		view.Value = model.Values{field.Name: field.Default}.String(field.Name)
	}

	if view.Widget == widgets.WidgetTextarea {
		rows := field.Rows
		if rows <= 0 {
			rows = 4
		}
		view.Rows = strconv.Itoa(rows)
	}
	for _, option := range field.Options {
		view.Options = append(view.Options, optionView{
			Value:    option.Value,
			Label:    option.Label,
			Selected: option.Value == view.Value,
		})
	}
	return view
}

func buildSignature(form model.FormModel, opts render.RenderOptions) signatureView {
	sizing := opts.SignatureSizing
	if sizing == (signature.Sizing{}) {
		sizing = signature.DefaultSizing()
	}
	view := signatureView{
		Enabled:   form.Misc.SignatureRequired,
		Source:    signature.SourceDraw,
		KeepRatio: sizing.KeepRatio,
		WidthCM:   formatCM(sizing.WidthCM),
		HeightCM:  formatCM(sizing.HeightCM),
		ScaleMode: signature.NormalizeScaleMode(sizing.ScaleMode),
		Align:     signature.NormalizeAlign(sizing.Align),
		Trim:      sizing.Trim,
		MinCM:     formatCM(signature.MinSizeCM),
		MaxCM:     formatCM(signature.MaxSizeCM),
	}
	if sig := opts.Signature; !sig.Empty() {
		view.Source = sig.Meta.Source
	}
	return view
}

func controlID(name string) string {
	return "fd-" + strings.TrimSpace(name)
}

func formatCM(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
