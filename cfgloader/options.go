package cfgloader

// Options holds configuration options for Load and MustLoad.
type Options struct {
	// Silent disables printing the loaded config to stdout when set to true.
	Silent bool
}

// Option is a functional option for configuring load behavior.
type Option func(*Options)

// WithSilent disables config printing.
func WithSilent() Option {
	return func(o *Options) {
		o.Silent = true
	}
}

func defaultOptions() Options {
	return Options{}
}
