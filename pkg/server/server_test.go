package server_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"

	"github.com/goliatone/go-formdoc/pkg/forms"
	"github.com/goliatone/go-formdoc/pkg/orchestrator"
	"github.com/goliatone/go-formdoc/pkg/server"
	"github.com/goliatone/go-formdoc/pkg/testsupport"
	"github.com/goliatone/go-formdoc/pkg/uploads"
)

func testServer(t *testing.T) (*httptest.Server, *uploads.Store) {
	t.Helper()
	fsys := fstest.MapFS{
		"forms/kontakt/schema.json": {Data: []byte(`{"sections":[{"key":"person","title_i18n":"person.title","fields":[
{"key":"name","label_i18n":"person.name","required":true},
{"key":"ok","type":"checkbox","label_i18n":"person.ok","required":true}
]}]}`)},
		"forms/kontakt/i18n.de.json": {Data: []byte(`{"app.title":"Kontakt","person.name":"Name","person.ok":"Einverstanden","msg.created":"PDF erstellt."}`)},
		"forms/kontakt/i18n.ar.json": {Data: []byte(`{"app.title":"اتصال","person.name":"الاسم","person.ok":"موافق"}`)},
		"forms/notiz/schema.json": {Data: []byte(`{"sections":[{"key":"n","fields":[{"key":"text","type":"textarea","label_i18n":"n.text"}]}],
"misc":{"signature_required":false}}`)},
		"forms/notiz/i18n.de.json": {Data: []byte(`{"app.title":"Notiz","n.text":"Text","msg.created":"PDF erstellt."}`)},
	}
	discovered, err := forms.Discover(fsys, "forms")
	if err != nil {
		t.Fatalf("discover: %v", err)
	}

	logger, _ := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	gen := orchestrator.New(
		orchestrator.WithForms(forms.NewRegistry(discovered...)),
		orchestrator.WithLogger(logger),
	)
	store, err := uploads.New(uploads.WithDir(t.TempDir()), uploads.WithMaxBytes(64<<10))
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	srv, err := server.New(gen, store, server.WithLogger(logger), server.WithLanguages("de", "ar", "en"))
	if err != nil {
		t.Fatalf("server: %v", err)
	}
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, store
}

func noRedirect(*http.Request, []*http.Request) error {
	return http.ErrUseLastResponse
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(data)
}

func postMultipart(t *testing.T, target string, fields map[string]string, file string, content []byte) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if file != "" {
		part, err := w.CreateFormFile("signature_file", file)
		if err != nil {
			t.Fatalf("create file: %v", err)
		}
		part.Write(content)
	}
	w.Close()

	resp, err := http.Post(target, w.FormDataContentType(), &buf)
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	return resp
}

func TestIndexRedirectsToFirstForm(t *testing.T) {
	ts, _ := testServer(t)
	client := &http.Client{CheckRedirect: noRedirect}

	resp, err := client.Get(ts.URL + "/?lang=ar")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther || resp.Header.Get("Location") != "/forms/kontakt?lang=ar" {
		t.Fatalf("unexpected redirect %d %q", resp.StatusCode, resp.Header.Get("Location"))
	}
}

func TestFormPage(t *testing.T) {
	ts, _ := testServer(t)

	resp, err := http.Get(ts.URL + "/forms/kontakt?lang=ar")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	body := readBody(t, resp)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d: %s", resp.StatusCode, body)
	}
	for _, fragment := range []string{`dir="rtl"`, "الاسم", `name="person_name"`, `value="ar" selected`} {
		if !strings.Contains(body, fragment) {
			t.Fatalf("expected %q in page\n%s", fragment, body)
		}
	}

	resp, err = http.Get(ts.URL + "/forms/missing")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown form, got %d", resp.StatusCode)
	}
}

func TestSubmit_MissingFieldsReturns422(t *testing.T) {
	ts, _ := testServer(t)

	resp := postMultipart(t, ts.URL+"/forms/kontakt", map[string]string{"lang": "de", "person_name": " "}, "", nil)
	body := readBody(t, resp)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}
	for _, fragment := range []string{"- Name", "- Einverstanden", "Pflichtfeld"} {
		if !strings.Contains(body, fragment) {
			t.Fatalf("expected %q in page\n%s", fragment, body)
		}
	}
}

func TestSubmit_CreatesDownload(t *testing.T) {
	ts, store := testServer(t)

	resp := postMultipart(t, ts.URL+"/forms/kontakt", map[string]string{
		"lang":             "de",
		"person_name":      "Jürgen Müller",
		"person_ok":        "1",
		"stadt":            "Köln",
		"datum":            "01.05.2024",
		"signature_source": "draw",
		"signature_data":   testsupport.SignatureDataURL(t, 40, 20),
	}, "", nil)
	body := readBody(t, resp)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d\n%s", resp.StatusCode, body)
	}
	if !strings.Contains(body, "PDF erstellt.") {
		t.Fatalf("expected success message\n%s", body)
	}

	link := regexp.MustCompile(`href="(/downloads/[^"]+)"`).FindStringSubmatch(body)
	if link == nil {
		t.Fatalf("expected download link\n%s", body)
	}
	if store.Len() != 1 {
		t.Fatalf("expected stored document, got %d files", store.Len())
	}

	download, err := http.Get(ts.URL + link[1])
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	data := readBody(t, download)
	if download.Header.Get("Content-Type") != "application/pdf" {
		t.Fatalf("unexpected content type %q", download.Header.Get("Content-Type"))
	}
	if !strings.Contains(download.Header.Get("Content-Disposition"), "kontakt.pdf") {
		t.Fatalf("unexpected disposition %q", download.Header.Get("Content-Disposition"))
	}
	testsupport.AssertPDF(t, []byte(data))
	testsupport.AssertPDFText(t, []byte(data), "Kontakt", "Jürgen Müller", "Köln", "01.05.2024")
	if got := testsupport.PDFImageCount([]byte(data)); got != 1 {
		t.Fatalf("expected the signature image, got %d images", got)
	}
}

func TestSubmit_IgnoresSignatureOfUnsignedForm(t *testing.T) {
	ts, store := testServer(t)

	resp := postMultipart(t, ts.URL+"/forms/notiz", map[string]string{
		"lang":             "de",
		"n_text":           "Grüße aus Köln",
		"signature_source": "upload",
	}, "signature.gif", []byte("GIF89a"))
	body := readBody(t, resp)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d\n%s", resp.StatusCode, body)
	}
	link := regexp.MustCompile(`href="(/downloads/[^"]+)"`).FindStringSubmatch(body)
	if link == nil {
		t.Fatalf("expected download link\n%s", body)
	}
	if store.Len() != 1 {
		t.Fatalf("expected only the document to be stored, got %d files", store.Len())
	}

	download, err := http.Get(ts.URL + link[1])
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	data := []byte(readBody(t, download))
	testsupport.AssertPDF(t, data)
	testsupport.AssertPDFText(t, data, "Grüße aus Köln")
	if got := testsupport.PDFImageCount(data); got != 0 {
		t.Fatalf("expected no images, got %d", got)
	}
}

func TestSubmit_RejectsUnsupportedUpload(t *testing.T) {
	ts, _ := testServer(t)

	resp := postMultipart(t, ts.URL+"/forms/kontakt", map[string]string{
		"lang":             "de",
		"person_name":      "Ada",
		"person_ok":        "1",
		"signature_source": "upload",
	}, "signature.gif", []byte("GIF89a"))
	body := readBody(t, resp)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, "PNG") {
		t.Fatalf("expected upload type message\n%s", body)
	}
}

func TestDownloadUnknownID(t *testing.T) {
	ts, _ := testServer(t)

	resp, err := http.Get(ts.URL + "/downloads/" + url.PathEscape("nope"))
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestAPI(t *testing.T) {
	ts, _ := testServer(t)

	resp, err := http.Get(ts.URL + "/api/forms?lang=de")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	var list struct {
		Forms []struct {
			Key  string `json:"key"`
			Name string `json:"name"`
		} `json:"forms"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	resp.Body.Close()
	if len(list.Forms) != 2 || list.Forms[0].Name != "Kontakt" {
		t.Fatalf("unexpected list %+v", list)
	}

	resp, err = http.Post(ts.URL+"/api/forms/kontakt/pdf", "application/json", strings.NewReader(`{"values":{"person_name":""}}`))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	var invalid struct {
		Error  string              `json:"error"`
		Fields map[string][]string `json:"fields"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&invalid); err != nil {
		t.Fatalf("decode: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnprocessableEntity || len(invalid.Fields) != 2 {
		t.Fatalf("unexpected validation response %d %+v", resp.StatusCode, invalid)
	}

	resp, err = http.Post(ts.URL+"/api/forms/kontakt/pdf", "application/json",
		strings.NewReader(`{"values":{"person_name":"Ada","person_ok":true}}`))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	data := readBody(t, resp)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, data)
	}
	testsupport.AssertPDF(t, []byte(data))
	testsupport.AssertPDFText(t, []byte(data), "Ada")

	payload, err := json.Marshal(map[string]any{
		"values":    map[string]any{"n_text": "Grüße"},
		"signature": testsupport.SignatureDataURL(t, 40, 20),
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	resp, err = http.Post(ts.URL+"/api/forms/notiz/pdf", "application/json", bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	unsigned := []byte(readBody(t, resp))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, unsigned)
	}
	testsupport.AssertPDFText(t, unsigned, "Grüße")
	if got := testsupport.PDFImageCount(unsigned); got != 0 {
		t.Fatalf("expected the signature to be ignored, got %d images", got)
	}

	resp, err = http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("healthz: %v", err)
	}
	if body := readBody(t, resp); !strings.Contains(body, `"forms":2`) {
		t.Fatalf("unexpected health body %q", body)
	}
}
