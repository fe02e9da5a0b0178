package model

// Options configures the behaviour of the Builder. Options are constructed by
// the public adapter in pkg/model and passed into New.
type Options struct {
	// Labeler derives a label when neither a translation nor a literal label
	// exists. The default returns the raw key.
	Labeler func(string) string
}

func defaultOptions() Options {
	return Options{
		Labeler: func(key string) string { return key },
	}
}
