package options

import (
	"fmt"
	"time"

	genericoptions "github.com/kiosk404/pokedex/internal/pkg/options"
	"github.com/kiosk404/pokedex/pkg/logger"
	"github.com/kiosk404/pokedex/pkg/utils/json"
	"github.com/spf13/pflag"
)

const DefaultSourceURL = "https://pokeapi.co/api/v2/pokemon"

// ExtractOptions configures the PokeAPI source.
type ExtractOptions struct {
	SourceURL   string        `json:"source-url"  mapstructure:"source-url"`
	Timeout     time.Duration `json:"timeout"     mapstructure:"timeout"`
	RetryMax    int           `json:"retry-max"   mapstructure:"retry-max"`
	Concurrency int           `json:"concurrency" mapstructure:"concurrency"`
}

func NewExtractOptions() *ExtractOptions {
	return &ExtractOptions{
		SourceURL:   DefaultSourceURL,
		Timeout:     10 * time.Second,
		RetryMax:    3,
		Concurrency: 8,
	}
}

func (o *ExtractOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.SourceURL, "extract.source-url", o.SourceURL, "PokeAPI pokemon list endpoint.")
	fs.DurationVar(&o.Timeout, "extract.timeout", o.Timeout, "Timeout of each PokeAPI request.")
	fs.IntVar(&o.RetryMax, "extract.retry-max", o.RetryMax, "Retries for a failed PokeAPI request.")
	fs.IntVar(&o.Concurrency, "extract.concurrency", o.Concurrency, "Detail requests in flight at once.")
}

func (o *ExtractOptions) Validate() []error {
	var errs []error
	if o.SourceURL == "" {
		errs = append(errs, fmt.Errorf("--extract.source-url must not be empty"))
	}
	if o.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("--extract.timeout must be positive"))
	}
	if o.RetryMax < 0 {
		errs = append(errs, fmt.Errorf("--extract.retry-max must not be negative"))
	}
	if o.Concurrency < 1 || o.Concurrency > 64 {
		errs = append(errs, fmt.Errorf("--extract.concurrency must be between 1 and 64"))
	}
	return errs
}

type Options struct {
	DatabaseOptions *genericoptions.DatabaseOptions `json:"database" mapstructure:"database"`
	ExtractOptions  *ExtractOptions                 `json:"extract"  mapstructure:"extract"`
	Log             *logger.Options                 `json:"log"      mapstructure:"log"`
}

func NewOptions() *Options {
	return &Options{
		DatabaseOptions: genericoptions.NewDatabaseOptions(),
		ExtractOptions:  NewExtractOptions(),
		Log:             logger.NewOptions("pokeetl"),
	}
}

func (o *Options) AddFlags(fs *pflag.FlagSet) {
	o.DatabaseOptions.AddFlags(fs)
	o.ExtractOptions.AddFlags(fs)
	fs.StringVar(&o.Log.Level, "log.level", o.Log.Level, "Minimum log level (debug, info, warn, error).")
	fs.StringVar(&o.Log.Format, "log.format", o.Log.Format, "Log format, text or json.")
}

func (o *Options) Validate() []error {
	var errs []error
	errs = append(errs, o.DatabaseOptions.Validate()...)
	errs = append(errs, o.ExtractOptions.Validate()...)
	errs = append(errs, o.Log.Validate()...)
	return errs
}

func (o *Options) String() string {
	data, _ := json.Marshal(o)

	return string(data)
}
