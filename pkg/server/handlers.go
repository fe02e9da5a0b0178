package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-formdoc/pkg/forms"
	"github.com/goliatone/go-formdoc/pkg/i18n"
	"github.com/goliatone/go-formdoc/pkg/model"
	"github.com/goliatone/go-formdoc/pkg/orchestrator"
	"github.com/goliatone/go-formdoc/pkg/pdf"
	"github.com/goliatone/go-formdoc/pkg/render"
	"github.com/goliatone/go-formdoc/pkg/renderers/pdfdoc"
	"github.com/goliatone/go-formdoc/pkg/renderers/vanilla"
	"github.com/goliatone/go-formdoc/pkg/signature"
	"github.com/goliatone/go-formdoc/pkg/uploads"
)

// Posted names of the signature inputs.
const (
	fieldSignatureSource = "signature_source"
	fieldSignatureFile   = "signature_file"
	fieldKeepRatio       = "sig_keep_ratio"
	fieldWidthCM         = "sig_width_cm"
	fieldHeightCM        = "sig_height_cm"
	fieldScaleMode       = "sig_scale_mode"
	fieldAlign           = "sig_align"
	fieldTrim            = "sig_trim"
)

// Catalog keys of the server messages.
const (
	msgCreatedKey    = "msg.created"
	msgUploadTypeKey = "error.upload_type"
	msgUploadSizeKey = "error.upload_size"
	msgFailedKey     = "error.generate"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	keys := s.gen.Forms().List()
	if len(keys) == 0 {
		http.Error(w, "no forms available", http.StatusNotFound)
		return
	}
	target := "/forms/" + url.PathEscape(keys[0])
	if lang := r.URL.Query().Get("lang"); lang != "" {
		target += "?lang=" + url.QueryEscape(s.language(lang))
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (s *Server) handleForm(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	lang := s.language(r.URL.Query().Get("lang"))
	s.renderPage(w, r, http.StatusOK, key, lang, render.RenderOptions{})
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	r.Body = http.MaxBytesReader(w, r.Body, s.store.MaxBytes()+multipartMemory)
	if err := parseForm(r); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, fmt.Sprintf("request exceeds %s", s.store.Limit()), http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "invalid form payload", http.StatusBadRequest)
		return
	}

	lang := s.language(firstNonEmpty(r.PostFormValue(render.HiddenLanguage), r.URL.Query().Get("lang")))
	ui, err := s.gen.Localize(key, lang, false)
	if err != nil {
		s.fail(w, err)
		return
	}

	values := render.SubmittedValues(ui.Model, r.PostForm)
	sizing := sizingFrom(r.PostForm)
	opts := render.RenderOptions{Values: values, SignatureSizing: sizing}

	if ui.Model.Misc.SignatureRequired {
		sig, err := s.signatureFrom(r)
		if err != nil {
			status, message := s.signatureError(err, ui.Catalog, lang)
			opts.FormErrors = []string{message}
			s.renderPage(w, r, status, key, lang, opts)
			return
		}
		opts.Signature = sig
	}

	result, err := s.gen.Generate(r.Context(), orchestrator.Request{
		Form:     key,
		Renderer: pdfdoc.Name,
		Locale:   lang,
		RenderOptions: render.RenderOptions{
			Values:          values,
			Signature:       opts.Signature,
			SignatureSizing: sizing,
		},
	})
	var verr *orchestrator.ValidationError
	switch {
	case errors.As(err, &verr):
		mapping := verr.Mapping()
		opts.Errors = mapping.Fields
		opts.FormErrors = mapping.Form
		s.renderPage(w, r, http.StatusUnprocessableEntity, key, lang, opts)
		return
	case err != nil:
		s.logger.WithError(err).WithField("form", key).Error("document generation failed")
		opts.FormErrors = []string{ui.Catalog.Get(msgFailedKey, "Das Dokument konnte nicht erstellt werden.")}
		s.renderPage(w, r, http.StatusInternalServerError, key, lang, opts)
		return
	}

	file, err := s.store.Save(key+".pdf", result.ContentType, bytes.NewReader(result.Output))
	if err != nil {
		s.logger.WithError(err).WithField("form", key).Error("document not stored")
		opts.FormErrors = []string{ui.Catalog.Get(msgFailedKey, "Das Dokument konnte nicht erstellt werden.")}
		s.renderPage(w, r, http.StatusInternalServerError, key, lang, opts)
		return
	}

	s.logger.WithFields(logrus.Fields{"form": key, "id": file.ID, "size": file.HumanSize()}).Info("document created")
	opts.Message = ui.Catalog.Get(msgCreatedKey, "PDF wurde erstellt.")
	opts.Download = "/downloads/" + file.ID
	s.renderPage(w, r, http.StatusOK, key, lang, opts)
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	file, rc, err := s.store.Open(r.PathValue("id"))
	if errors.Is(err, uploads.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		s.logger.WithError(err).Error("download failed")
		http.Error(w, "download failed", http.StatusInternalServerError)
		return
	}
	defer rc.Close()

	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": file.Name}))
	w.Header().Set("Content-Length", strconv.FormatInt(file.Size, 10))
	if _, err := io.Copy(w, rc); err != nil {
		s.logger.WithError(err).WithField("id", file.ID).Warn("download interrupted")
	}
}

type formSummary struct {
	Key       string   `json:"key"`
	Name      string   `json:"name"`
	Languages []string `json:"languages"`
	HasLayout bool     `json:"has_layout"`
}

func (s *Server) handleAPIForms(w http.ResponseWriter, r *http.Request) {
	lang := s.language(r.URL.Query().Get("lang"))
	all := s.gen.Forms().Forms()
	out := make([]formSummary, 0, len(all))
	for _, form := range all {
		out = append(out, formSummary{
			Key:       form.Key,
			Name:      form.Name(lang),
			Languages: form.Languages(),
			HasLayout: form.Layout != nil,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"forms": out})
}

func (s *Server) handleAPIForm(w http.ResponseWriter, r *http.Request) {
	lang := s.language(r.URL.Query().Get("lang"))
	localized, err := s.gen.Localize(r.PathValue("key"), lang, false)
	if err != nil {
		s.failJSON(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"lang": localized.Lang,
		"form": localized.Model,
	})
}

type pdfPayload struct {
	Lang      string            `json:"lang"`
	Values    map[string]any    `json:"values"`
	Signature string            `json:"signature"`
	Sizing    *signature.Sizing `json:"signature_sizing"`
	Options   pdf.Options       `json:"options"`
}

type validationPayload struct {
	Error  string              `json:"error"`
	Issues any                 `json:"issues"`
	Fields map[string][]string `json:"fields"`
}

func (s *Server) handleAPIPDF(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	r.Body = http.MaxBytesReader(w, r.Body, s.store.MaxBytes()+multipartMemory)

	var payload pdfPayload
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&payload); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSONError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("request exceeds %s", s.store.Limit()))
			return
		}
		writeJSONError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	lang := s.language(firstNonEmpty(payload.Lang, r.URL.Query().Get("lang")))
	ui, err := s.gen.Localize(key, lang, false)
	if err != nil {
		s.failJSON(w, err)
		return
	}

	opts := render.RenderOptions{
		Values:     payload.Values,
		PDFOptions: payload.Options,
	}
	if ui.Model.Misc.SignatureRequired {
		sig, err := signature.FromDataURL(payload.Signature)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		opts.Signature = sig
	}
	if payload.Sizing != nil {
		opts.SignatureSizing = *payload.Sizing
	}

	result, err := s.gen.Generate(r.Context(), orchestrator.Request{
		Form:          key,
		Renderer:      pdfdoc.Name,
		Locale:        lang,
		RenderOptions: opts,
	})
	var verr *orchestrator.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusUnprocessableEntity, validationPayload{
			Error:  verr.Message(),
			Issues: verr.Result.Issues,
			Fields: verr.Mapping().Fields,
		})
		return
	}
	if err != nil {
		s.failJSON(w, err)
		return
	}

	w.Header().Set("Content-Type", result.ContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": key + ".pdf"}))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Output)
}

// renderPage renders the HTML page of key with the selectors filled in.
func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, status int, key, lang string, opts render.RenderOptions) {
	opts.Locale = lang
	opts.Languages = s.languageLinks(lang)
	opts.Forms = s.formLinks(key, lang)

	result, err := s.gen.Generate(r.Context(), orchestrator.Request{
		Form:          key,
		Renderer:      vanilla.Name,
		Locale:        lang,
		RenderOptions: opts,
	})
	if err != nil {
		s.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", result.ContentType)
	w.WriteHeader(status)
	_, _ = w.Write(result.Output)
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	if errors.Is(err, forms.ErrFormNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	s.logger.WithError(err).Error("render failed")
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func (s *Server) failJSON(w http.ResponseWriter, err error) {
	if errors.Is(err, forms.ErrFormNotFound) {
		writeJSONError(w, http.StatusNotFound, err.Error())
		return
	}
	s.logger.WithError(err).Error("api request failed")
	writeJSONError(w, http.StatusInternalServerError, "internal error")
}

// signatureFrom reads the drawn or uploaded signature. A missing signature
// yields nil.
func (s *Server) signatureFrom(r *http.Request) (*signature.Signature, error) {
	if r.PostFormValue(fieldSignatureSource) != signature.SourceUpload {
		return signature.FromDataURL(r.PostFormValue(render.HiddenSignatureData))
	}

	file, header, err := r.FormFile(fieldSignatureFile)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("server: read upload: %w", err)
	}
	defer file.Close()

	stored, err := s.store.Save(header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		return nil, err
	}
	_, data, err := s.store.Read(stored.ID)
	if err != nil {
		return nil, err
	}
	return signature.FromUpload(header.Filename, data)
}

func (s *Server) signatureError(err error, catalog i18n.Catalog, lang string) (int, string) {
	switch {
	case errors.Is(err, uploads.ErrTooLarge):
		format := catalog.Get(msgUploadSizeKey, "Die Datei ist zu groß (max. %s).")
		return http.StatusRequestEntityTooLarge, fmt.Sprintf(format, s.store.Limit())
	case errors.Is(err, signature.ErrUnsupportedType):
		return http.StatusBadRequest, catalog.Get(msgUploadTypeKey, "Nur PNG- oder JPG-Dateien sind erlaubt.")
	default:
		s.logger.WithError(err).WithField("lang", lang).Warn("signature rejected")
		return http.StatusBadRequest, err.Error()
	}
}

// sizingFrom reads the upload sizing controls; defaults apply when the
// controls were not posted.
func sizingFrom(posted url.Values) signature.Sizing {
	sizing := signature.DefaultSizing()
	if _, ok := posted[fieldWidthCM]; !ok {
		return sizing
	}
	sizing.KeepRatio = model.Truthy(posted[fieldKeepRatio])
	sizing.Trim = model.Truthy(posted[fieldTrim])
	if v, err := strconv.ParseFloat(strings.TrimSpace(posted.Get(fieldWidthCM)), 64); err == nil {
		sizing.WidthCM = v
	}
	if v, err := strconv.ParseFloat(strings.TrimSpace(posted.Get(fieldHeightCM)), 64); err == nil {
		sizing.HeightCM = v
	}
	if mode := posted.Get(fieldScaleMode); mode != "" {
		sizing.ScaleMode = signature.NormalizeScaleMode(mode)
	}
	if align := posted.Get(fieldAlign); align != "" {
		sizing.Align = signature.NormalizeAlign(align)
	}
	return sizing
}

func parseForm(r *http.Request) error {
	err := r.ParseMultipartForm(multipartMemory)
	if errors.Is(err, http.ErrNotMultipart) {
		return r.ParseForm()
	}
	return err
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
