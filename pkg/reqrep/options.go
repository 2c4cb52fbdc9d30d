package reqrep

import (
	"time"

	"github.com/hsiuhsiu/reqrep-go/pkg/reqrep/driver"
	"github.com/hsiuhsiu/reqrep-go/pkg/reqrep/logging"
)

const (
	// DefaultDriver is used when no WithDriver option is given.
	DefaultDriver = "sp"

	DefaultDialTimeout  = 5 * time.Second
	DefaultPollInterval = 100 * time.Millisecond
)

// Option configures Dial and Open.
type Option func(*options)

type options struct {
	mode            Mode
	driver          string
	dialTimeout     time.Duration
	exchangeTimeout time.Duration
	pollInterval    time.Duration
	linger          time.Duration
	dialAsync       bool
	logger          logging.Logger
	interceptors    []Interceptor
}

func defaultOptions() options {
	return options{
		mode:         ModeRequest,
		driver:       DefaultDriver,
		dialTimeout:  DefaultDialTimeout,
		pollInterval: DefaultPollInterval,
		logger:       logging.New(nil),
	}
}

func (o options) driverOptions() driver.Options {
	return driver.Options{
		PollInterval: o.pollInterval,
		Linger:       o.linger,
		DialAsync:    o.dialAsync,
	}
}

// WithMode selects the socket mode. The default is ModeRequest.
func WithMode(m Mode) Option {
	return func(o *options) { o.mode = m }
}

// WithDriver selects a registered driver by name.
func WithDriver(name string) Option {
	return func(o *options) { o.driver = name }
}

// WithDialTimeout bounds connection establishment. Zero means no bound beyond
// the caller's context.
func WithDialTimeout(d time.Duration) Option {
	return func(o *options) { o.dialTimeout = d }
}

// WithExchangeTimeout applies a deadline to every Exchange. Zero disables it.
func WithExchangeTimeout(d time.Duration) Option {
	return func(o *options) { o.exchangeTimeout = d }
}

// WithPollInterval sets how often a polling driver rechecks the caller's
// context while blocked.
func WithPollInterval(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.pollInterval = d
		}
	}
}

func WithLinger(d time.Duration) Option {
	return func(o *options) { o.linger = d }
}

// WithDialAsync lets Open succeed before the peer is reachable; the first
// Exchange then waits for it.
func WithDialAsync(async bool) Option {
	return func(o *options) { o.dialAsync = async }
}

// WithLogger sets the logger for connection lifecycle events. Nil discards.
func WithLogger(l logging.Logger) Option {
	return func(o *options) {
		if l == nil {
			l = logging.Nop()
		}
		o.logger = l
	}
}

// WithInterceptors appends exchange interceptors. The first one given runs
// outermost.
func WithInterceptors(ics ...Interceptor) Option {
	return func(o *options) { o.interceptors = append(o.interceptors, ics...) }
}
