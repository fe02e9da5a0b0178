package forms

import (
	"fmt"
	"io/fs"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
)

// Loader re-runs discovery into a registry.
type Loader struct {
	FS       fs.FS
	Root     string
	Registry *Registry
	Logger   logrus.FieldLogger
}

// Reload discovers forms and replaces the registry contents. Broken forms are
// logged and skipped; the registry is left untouched when nothing loads.
func (l *Loader) Reload() error {
	forms, err := Discover(l.FS, l.Root)
	if err != nil && l.Logger != nil {
		if merr, ok := err.(*multierror.Error); ok {
			for _, formErr := range merr.Errors {
				l.Logger.WithError(formErr).Warn("form skipped")
			}
		} else {
			l.Logger.WithError(err).Error("form discovery failed")
		}
	}
	if len(forms) == 0 {
		if err != nil {
			return err
		}
		return fmt.Errorf("forms: no forms found in %s", l.Root)
	}

	l.Registry.Replace(forms)
	if l.Logger != nil {
		l.Logger.WithField("forms", l.Registry.List()).Info("forms loaded")
	}
	return nil
}
