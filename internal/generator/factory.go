package generator

import (
	"fmt"

	"brushquote/internal/config"
	"brushquote/internal/port"
)

// ProviderFactory is a function that creates a ProposalGenerator from a provider config.
type ProviderFactory func(cfg *config.GeneratorProviderConfig) (port.ProposalGenerator, error)

// registry of generator provider factories, populated explicitly via
// RegisterProvider at wiring time.
var providers = map[string]ProviderFactory{}

// RegisterProvider registers a generator provider factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	providers[name] = factory
}

// NewGenerator creates a ProposalGenerator from a provider config using the
// registered factory.
func NewGenerator(cfg *config.GeneratorProviderConfig) (port.ProposalGenerator, error) {
	factory, ok := providers[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown generator provider: %s", cfg.Provider)
	}
	return factory(cfg)
}
