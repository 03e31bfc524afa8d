package pagination

const (
	defaultPageSize = 100
	defaultMaxSize  = 500
)

type options struct {
	defaultPageSize int
	maxPageSize     int
}

func defaultOptions() options {
	return options{
		defaultPageSize: defaultPageSize,
		maxPageSize:     defaultMaxSize,
	}
}

// Option customizes Normalize behavior.
type Option func(*options)

// WithDefaultPageSize overrides the page size applied when none is given.
func WithDefaultPageSize(size int) Option {
	return func(o *options) {
		o.defaultPageSize = size
	}
}

// WithMaxPageSize overrides the cap applied to the requested page size.
func WithMaxPageSize(size int) Option {
	return func(o *options) {
		o.maxPageSize = size
	}
}
