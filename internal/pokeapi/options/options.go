package options

import (
	genericoptions "github.com/kiosk404/pokedex/internal/pkg/options"
	"github.com/kiosk404/pokedex/pkg/logger"
	"github.com/kiosk404/pokedex/pkg/utils/json"
	"github.com/spf13/pflag"
)

type Options struct {
	GenericServerRunOptions *genericoptions.ServerRunOptions `json:"serving"  mapstructure:"serving"`
	GRPCOptions             *genericoptions.GRPCOptions      `json:"grpc"     mapstructure:"grpc"`
	DatabaseOptions         *genericoptions.DatabaseOptions  `json:"database" mapstructure:"database"`
	CacheOptions            *genericoptions.CacheOptions     `json:"cache"    mapstructure:"cache"`
	CatalogOptions          *CatalogOptions                  `json:"catalog"  mapstructure:"catalog"`
	MCPOptions              *MCPOptions                      `json:"mcp"      mapstructure:"mcp"`
	Log                     *logger.Options                  `json:"log"      mapstructure:"log"`
}

func NewOptions() *Options {
	return &Options{
		GenericServerRunOptions: genericoptions.NewServerRunOptions(8000),
		GRPCOptions:             genericoptions.NewGRPCOptions(9000),
		DatabaseOptions:         genericoptions.NewDatabaseOptions(),
		CacheOptions:            genericoptions.NewCacheOptions(),
		CatalogOptions:          NewCatalogOptions(),
		MCPOptions:              NewMCPOptions(),
		Log:                     logger.NewOptions("pokeapi"),
	}
}

func (o *Options) AddFlags(fs *pflag.FlagSet) {
	o.GenericServerRunOptions.AddFlags(fs)
	o.GRPCOptions.AddFlags(fs)
	o.DatabaseOptions.AddFlags(fs)
	o.CacheOptions.AddFlags(fs)
	o.CatalogOptions.AddFlags(fs)
	o.MCPOptions.AddFlags(fs)
	fs.StringVar(&o.Log.Level, "log.level", o.Log.Level, "Minimum log level (debug, info, warn, error).")
	fs.StringVar(&o.Log.Format, "log.format", o.Log.Format, "Log format, text or json.")
}

func (o *Options) Validate() []error {
	var errs []error
	errs = append(errs, o.GenericServerRunOptions.Validate()...)
	errs = append(errs, o.GRPCOptions.Validate()...)
	errs = append(errs, o.DatabaseOptions.Validate()...)
	errs = append(errs, o.CacheOptions.Validate()...)
	errs = append(errs, o.MCPOptions.Validate()...)
	errs = append(errs, o.Log.Validate()...)
	return errs
}

func (o *Options) String() string {
	data, _ := json.Marshal(o)

	return string(data)
}
