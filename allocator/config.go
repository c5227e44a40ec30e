package allocator

import (
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
	"github.com/xyproto/env/v2"
)

// Config holds process-wide allocator settings.
type Config struct {
	// HeapLimit caps a single heap request in bytes. Zero means no cap beyond
	// what an int can address.
	HeapLimit int
	// LogLevel is the minimum level allocators log at. zerolog.Disabled by default.
	LogLevel zerolog.Level
	// LogJSON selects JSON output instead of the console writer.
	LogJSON bool
	// LogOutput defaults to os.Stderr.
	LogOutput io.Writer

	logger zerolog.Logger
}

// LoadConfig reads the configuration from the environment:
//
//	FALLIBLE_HEAP_LIMIT   byte cap for Default heap allocators
//	FALLIBLE_LOG_LEVEL    zerolog level name, "disabled" when unset
//	FALLIBLE_LOG_JSON     emit JSON instead of console output
func LoadConfig() Config {
	// env caches the environment on first use.
	env.Load()
	lvl, err := zerolog.ParseLevel(env.Str("FALLIBLE_LOG_LEVEL", "disabled"))
	if err != nil {
		lvl = zerolog.Disabled
	}
	return Config{
		HeapLimit: env.Int("FALLIBLE_HEAP_LIMIT", 0),
		LogLevel:  lvl,
		LogJSON:   env.Bool("FALLIBLE_LOG_JSON"),
	}
}

// Logger builds the logger described by c.
func (c Config) Logger() zerolog.Logger {
	if c.LogLevel == zerolog.Disabled {
		return zerolog.Nop()
	}
	w := c.LogOutput
	if w == nil {
		w = os.Stderr
	}
	if !c.LogJSON {
		w = zerolog.ConsoleWriter{Out: w}
	}
	return zerolog.New(w).Level(c.LogLevel).With().Timestamp().Str("component", "allocator").Logger()
}

var (
	cfgOnce sync.Once
	cfgMu   sync.RWMutex
	cfg     Config
)

// SetConfig replaces the process configuration used by Default and by
// allocators constructed without WithLogger.
func SetConfig(c Config) {
	cfgOnce.Do(func() {})
	c.logger = c.Logger()
	cfgMu.Lock()
	cfg = c
	cfgMu.Unlock()
}

func current() Config {
	cfgOnce.Do(func() {
		c := LoadConfig()
		c.logger = c.Logger()
		cfgMu.Lock()
		cfg = c
		cfgMu.Unlock()
	})
	cfgMu.RLock()
	defer cfgMu.RUnlock()
	return cfg
}

// Option configures an allocator.
type Option func(*options)

type options struct {
	log   *zerolog.Logger
	limit int
}

// WithLogger sets the logger an allocator reports to.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) {
		o.log = &l
	}
}

// WithLimit caps single heap requests at n bytes.
func WithLimit(n int) Option {
	return func(o *options) {
		o.limit = n
	}
}

func buildOptions(opts []Option) (options, zerolog.Logger) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.log != nil {
		return o, *o.log
	}
	return o, current().logger
}
