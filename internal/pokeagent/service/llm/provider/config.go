package provider

import (
	"fmt"
	"os"
	"strings"

	"github.com/jinzhu/copier"
	"github.com/kiosk404/pokedex/internal/pkg/options"
)

// Merge deep-copies base and overlays the non-empty fields of user on it.
// Neither argument is modified.
func Merge(base, user *options.ProviderConfig) (*options.ProviderConfig, error) {
	out := &options.ProviderConfig{}
	if base != nil {
		if err := copier.CopyWithOption(out, base, copier.Option{DeepCopy: true}); err != nil {
			return nil, fmt.Errorf("copy provider defaults: %w", err)
		}
	}
	if user != nil {
		if err := copier.CopyWithOption(out, user, copier.Option{IgnoreEmpty: true, DeepCopy: true}); err != nil {
			return nil, fmt.Errorf("apply provider config: %w", err)
		}
	}
	return out, nil
}

// MaxTokens picks the output limit for modelID: the model entry, then the
// provider-wide value, then fallback.
func MaxTokens(cfg *options.ProviderConfig, modelID string, fallback int) int {
	for _, m := range cfg.Models {
		if m.ID == modelID && m.MaxTokens > 0 {
			return m.MaxTokens
		}
	}
	if cfg.MaxTokens > 0 {
		return cfg.MaxTokens
	}
	return fallback
}

// ExpandEnv replaces a whole-value "${NAME}" reference with $NAME.
// Anything else is returned unchanged.
func ExpandEnv(v string) string {
	name, ok := strings.CutPrefix(v, "${")
	if !ok {
		return v
	}
	name, ok = strings.CutSuffix(name, "}")
	if !ok {
		return v
	}
	return os.Getenv(name)
}
