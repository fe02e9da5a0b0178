package builders

import "github.com/goliatone/go-formdoc/pkg/pdf"

// Builder names, equal to the keys of the forms they serve.
const (
	Vollmacht         = "vollmacht"
	WohnsitzAenderung = "wohnsitz_aenderung"
	Obdachlosigkeit   = "obdachlosigkeit"
)

// RegisterDefaults adds the bundled builders to reg.
func RegisterDefaults(reg *pdf.Registry) error {
	for name, builder := range map[string]pdf.Builder{
		Vollmacht:         pdf.BuilderFunc(BuildVollmacht),
		WohnsitzAenderung: pdf.BuilderFunc(BuildWohnsitzAenderung),
		Obdachlosigkeit:   pdf.BuilderFunc(BuildObdachlosigkeit),
	} {
		if err := reg.Register(name, builder); err != nil {
			return err
		}
	}
	return nil
}

// NewRegistry returns a pdf registry with the generic, layout and bundled
// builders registered.
func NewRegistry() *pdf.Registry {
	reg := pdf.NewRegistry()
	if err := RegisterDefaults(reg); err != nil {
		panic(err)
	}
	return reg
}
