package internal

import "io"

// Option is a functional option for configuring the application.
type Option func(*application)

type application struct {
	config *Config
	out    io.Writer
	logOut io.Writer
	check  bool
	strict bool
	watch  bool
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithOutput sets where status lines are printed. Defaults to stdout.
func WithOutput(w io.Writer) Option {
	return func(a *application) {
		a.out = w
	}
}

// WithLogOutput sets where structured logs go. Defaults to stderr.
func WithLogOutput(w io.Writer) Option {
	return func(a *application) {
		a.logOut = w
	}
}

// WithCheck reports stale indexes instead of rewriting them.
func WithCheck(check bool) Option {
	return func(a *application) {
		a.check = check
	}
}

// WithStrict fails a document type whose records share a number.
func WithStrict(strict bool) Option {
	return func(a *application) {
		a.strict = strict
	}
}

// WithWatch keeps running after the first pass and regenerates indexes when
// record files change.
func WithWatch(watch bool) Option {
	return func(a *application) {
		a.watch = watch
	}
}
