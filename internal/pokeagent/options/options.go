package options

import (
	genericoptions "github.com/kiosk404/pokedex/internal/pkg/options"
	"github.com/kiosk404/pokedex/pkg/logger"
	"github.com/kiosk404/pokedex/pkg/utils/json"
	"github.com/spf13/pflag"
)

type Options struct {
	GenericServerRunOptions *genericoptions.ServerRunOptions `json:"serving" mapstructure:"serving"`
	GRPCOptions             *genericoptions.GRPCOptions      `json:"grpc"    mapstructure:"grpc"`
	ModelOptions            *genericoptions.ModelOptions     `json:"models"  mapstructure:"models"`
	AgentOptions            *AgentOptions                    `json:"agent"   mapstructure:"agent"`
	BackendOptions          *BackendOptions                  `json:"backend" mapstructure:"backend"`
	Log                     *logger.Options                  `json:"log"     mapstructure:"log"`
}

func NewOptions() *Options {
	return &Options{
		GenericServerRunOptions: genericoptions.NewServerRunOptions(8001),
		GRPCOptions:             genericoptions.NewGRPCOptions(9001),
		ModelOptions:            genericoptions.NewModelOptions(),
		AgentOptions:            NewAgentOptions(),
		BackendOptions:          NewBackendOptions(),
		Log:                     logger.NewOptions("pokeagent"),
	}
}

func (o *Options) AddFlags(fs *pflag.FlagSet) {
	o.GenericServerRunOptions.AddFlags(fs)
	o.GRPCOptions.AddFlags(fs)
	o.ModelOptions.AddFlags(fs)
	o.AgentOptions.AddFlags(fs)
	o.BackendOptions.AddFlags(fs)
	fs.StringVar(&o.Log.Level, "log.level", o.Log.Level, "Minimum log level (debug, info, warn, error).")
	fs.StringVar(&o.Log.Format, "log.format", o.Log.Format, "Log format, text or json.")
}

func (o *Options) Validate() []error {
	var errs []error
	errs = append(errs, o.GenericServerRunOptions.Validate()...)
	errs = append(errs, o.GRPCOptions.Validate()...)
	errs = append(errs, o.ModelOptions.Validate()...)
	errs = append(errs, o.AgentOptions.Validate()...)
	errs = append(errs, o.BackendOptions.Validate()...)
	errs = append(errs, o.Log.Validate()...)
	return errs
}

func (o *Options) String() string {
	data, _ := json.Marshal(o)

	return string(data)
}
