package forms_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formdoc/pkg/forms"
)

func TestRegistry(t *testing.T) {
	reg := forms.NewRegistry(&forms.Form{Key: "b"}, &forms.Form{Key: "a"}, nil, &forms.Form{})

	if diff := cmp.Diff([]string{"b", "a"}, reg.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
	if !reg.Has("a") || reg.Has("c") {
		t.Fatal("unexpected Has result")
	}

	if _, err := reg.Get("missing"); !errors.Is(err, forms.ErrFormNotFound) {
		t.Fatalf("expected ErrFormNotFound, got %v", err)
	}

	replacement := &forms.Form{Key: "c"}
	reg.Replace([]*forms.Form{replacement})
	got, err := reg.Get("c")
	if err != nil || got != replacement {
		t.Fatalf("expected replacement form, got %v, %v", got, err)
	}
	if reg.Has("a") || reg.Len() != 1 || len(reg.Forms()) != 1 {
		t.Fatal("replace must swap the whole set")
	}
}
