package render_test

import (
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formdoc/pkg/render"
)

func TestMergeAndSortHiddenFields(t *testing.T) {
	base := map[string]string{
		" existing ": "keep",
		"":           "ignored",
	}

	merged := render.MergeHiddenFields(base,
		render.Hidden(render.HiddenLanguage, "ar"),
		render.Hidden(render.HiddenForm, "vollmacht"),
		render.Hidden("  ", "skip"),
	)

	wantMerged := map[string]string{
		"existing": "keep",
		"lang":     "ar",
		"form":     "vollmacht",
	}
	if diff := cmp.Diff(wantMerged, merged); diff != "" {
		t.Fatalf("merged hidden fields mismatch (-want +got):\n%s", diff)
	}

	sorted := render.SortedHiddenFields(merged)
	wantSorted := []render.HiddenField{
		{Name: "existing", Value: "keep"},
		{Name: "form", Value: "vollmacht"},
		{Name: "lang", Value: "ar"},
	}
	if diff := cmp.Diff(wantSorted, sorted); diff != "" {
		t.Fatalf("sorted hidden fields mismatch (-want +got):\n%s", diff)
	}
}

func TestSubmittedValues(t *testing.T) {
	posted := url.Values{
		"person_name":  {"Erika Mustermann", "ignored"},
		"person_email": {""},
		"stadt":        {"Hamburg"},
		"datum":        {"01.02.2024"},
		"extra":        {"dropped"},
	}

	got := render.SubmittedValues(sampleForm(), posted)
	want := map[string]any{
		"person_name":  "Erika Mustermann",
		"person_email": "",
		"person_ok":    false,
		"stadt":        "Hamburg",
		"datum":        "01.02.2024",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("submitted values mismatch (-want +got):\n%s", diff)
	}

	posted.Set("person_ok", "on")
	if got := render.SubmittedValues(sampleForm(), posted)["person_ok"]; got != true {
		t.Fatalf("expected checked checkbox, got %v", got)
	}
}
