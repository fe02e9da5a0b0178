package testsupport

import (
	"bytes"
	"compress/zlib"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"io"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/go-pdf/fpdf"
)

var flateStream = regexp.MustCompile(`<</Filter /FlateDecode /Length (\d+)>>\nstream\n`)

// AssertPDF fails the test unless data looks like a complete PDF file.
func AssertPDF(t *testing.T, data []byte) {
	t.Helper()

	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Fatalf("expected PDF header, got %q", head(data))
	}
	if !bytes.Contains(data, []byte("%%EOF")) {
		t.Fatal("expected PDF trailer")
	}
}

// PDFPageCount counts page objects in an uncompressed page tree.
func PDFPageCount(data []byte) int {
	return bytes.Count(data, []byte("<</Type /Page\n"))
}

// PDFImageCount counts drawn image XObjects. Soft masks of transparent PNGs
// are not counted.
func PDFImageCount(data []byte) int {
	return bytes.Count(data, []byte("/Subtype /Image")) - bytes.Count(data, []byte("/SMask "))
}

// PDFContent returns the inflated page content streams of data.
func PDFContent(t *testing.T, data []byte) string {
	t.Helper()

	var out strings.Builder
	for _, loc := range flateStream.FindAllSubmatchIndex(data, -1) {
		length, err := strconv.Atoi(string(data[loc[2]:loc[3]]))
		if err != nil {
			t.Fatalf("stream length: %v", err)
		}
		start := loc[1]
		if start+length > len(data) {
			t.Fatalf("stream at %d overruns the file", start)
		}
		zr, err := zlib.NewReader(bytes.NewReader(data[start : start+length]))
		if err != nil {
			t.Fatalf("inflate stream at %d: %v", start, err)
		}
		raw, err := io.ReadAll(zr)
		if err != nil {
			t.Fatalf("inflate stream at %d: %v", start, err)
		}
		out.Write(raw)
		out.WriteByte('\n')
	}
	return out.String()
}

// AssertPDFText fails the test unless every text is drawn on a page of data.
// Texts are matched in their cp1252 encoding, the way the core fonts write
// them.
func AssertPDFText(t *testing.T, data []byte, texts ...string) {
	t.Helper()

	content := PDFContent(t, data)
	tr := fpdf.New("P", "pt", "A4", "").UnicodeTranslatorFromDescriptor("")
	escape := strings.NewReplacer(`\`, `\\`, "(", `\(`, ")", `\)`)
	for _, text := range texts {
		if !strings.Contains(content, escape.Replace(tr(text))) {
			t.Errorf("expected PDF to draw %q", text)
		}
	}
}

// SignaturePNG returns a w×h transparent PNG with a dark stroke across the
// middle third, enough to exercise trimming and scaling.
func SignaturePNG(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := h / 3; y < 2*h/3; y++ {
		for x := w / 4; x < 3*w/4; x++ {
			img.Set(x, y, color.NRGBA{R: 10, G: 10, B: 60, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode signature png: %v", err)
	}
	return buf.Bytes()
}

// SignatureDataURL wraps SignaturePNG in a data URL.
func SignatureDataURL(t *testing.T, w, h int) string {
	t.Helper()
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(SignaturePNG(t, w, h))
}

func head(data []byte) []byte {
	if len(data) > 16 {
		return data[:16]
	}
	return data
}
