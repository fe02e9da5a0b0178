package widgets_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formdoc/pkg/model"
	"github.com/goliatone/go-formdoc/pkg/widgets"
)

func TestRegistryResolveBuiltins(t *testing.T) {
	reg := widgets.NewRegistry()

	tests := []struct {
		name  string
		field model.Field
		want  string
	}{
		{name: "checkbox", field: model.Field{Type: "checkbox"}, want: widgets.WidgetCheckbox},
		{name: "textarea", field: model.Field{Type: "textarea"}, want: widgets.WidgetTextarea},
		{name: "select", field: model.Field{Type: "select"}, want: widgets.WidgetSelect},
		{name: "text with options", field: model.Field{Type: "text", Options: []model.Option{{Value: "a"}}}, want: widgets.WidgetSelect},
		{name: "radio", field: model.Field{Type: "radio", Options: []model.Option{{Value: "a"}}}, want: widgets.WidgetRadio},
		{name: "radio without options", field: model.Field{Type: "radio"}, want: widgets.WidgetText},
		{name: "date", field: model.Field{Type: "date"}, want: widgets.WidgetDate},
		{name: "email type", field: model.Field{Type: "email"}, want: widgets.WidgetEmail},
		{name: "email key", field: model.Field{Type: "text", Key: "Email"}, want: widgets.WidgetEmail},
		{name: "text", field: model.Field{Type: "text"}, want: widgets.WidgetText},
		{name: "explicit", field: model.Field{Type: "text", Widget: "signature"}, want: "signature"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := reg.Resolve(tt.field)
			if !ok {
				t.Fatalf("expected widget for %+v", tt.field)
			}
			if got != tt.want {
				t.Fatalf("Resolve() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRegistryCustomPriority(t *testing.T) {
	reg := widgets.NewRegistry()
	reg.Register("iban", 100, func(field model.Field) bool { return field.Key == "iban" })

	got, _ := reg.Resolve(model.Field{Type: "text", Key: "iban"})
	if got != "iban" {
		t.Fatalf("expected custom widget, got %q", got)
	}
}

func TestRegistryEmpty(t *testing.T) {
	var reg widgets.Registry
	if _, ok := reg.Resolve(model.Field{Type: "text"}); ok {
		t.Fatal("expected empty registry to resolve nothing")
	}
}

func TestRegistryDecorate(t *testing.T) {
	form := model.FormModel{Sections: []model.Section{{
		Key: "p",
		Fields: []model.Field{
			{Name: "p_name", Type: "text"},
			{Name: "p_ok", Type: "checkbox"},
		},
	}}}

	if err := widgets.NewRegistry().Decorate(&form); err != nil {
		t.Fatalf("decorate: %v", err)
	}

	var got []string
	for _, field := range form.Fields() {
		got = append(got, field.Widget)
	}
	if diff := cmp.Diff([]string{"text", "checkbox"}, got); diff != "" {
		t.Fatalf("widgets mismatch (-want +got):\n%s", diff)
	}
}
