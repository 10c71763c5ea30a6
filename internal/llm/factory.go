package llm

import (
	"fmt"
	"net/http"

	"github.com/huimingz/aicommit/internal/config"
)

// ProviderFactory creates LLM clients based on configuration
type ProviderFactory struct {
	httpClient *http.Client
}

// FactoryOption configures a ProviderFactory
type FactoryOption func(*ProviderFactory)

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(c *http.Client) FactoryOption {
	return func(f *ProviderFactory) {
		f.httpClient = c
	}
}

// NewProviderFactory creates a new ProviderFactory
func NewProviderFactory(opts ...FactoryOption) *ProviderFactory {
	f := &ProviderFactory{}
	for _, opt := range opts {
		opt(f)
	}
	if f.httpClient == nil {
		f.httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return f
}

// Create picks the client variant for the resolved configuration.
// It never touches the network.
func (f *ProviderFactory) Create(cfg *config.RuntimeConfig) (Client, error) {
	if cfg == nil {
		return nil, newError(KindUnknownProvider, "", 0, "no configuration", nil)
	}

	name := cfg.Provider.String()
	switch cfg.Provider.Variant() {
	case config.VariantLocal:
		if cfg.BaseURL == "" {
			return nil, connectionFailed(name, 0, "no base URL configured")
		}
		return NewOllamaClient(cfg.BaseURL, cfg.Model, f.httpClient), nil
	case config.VariantOpenAICompatible:
		if cfg.BaseURL == "" {
			return nil, connectionFailed(name, 0, "no base URL configured; set base_url for provider %q", name)
		}
		return NewOpenAIClient(name, cfg.BaseURL, cfg.Model, cfg.APIKey, f.httpClient), nil
	case config.VariantUnknown:
		return nil, newError(KindUnknownProvider, name, 0,
			fmt.Sprintf("%q is not supported (run 'aicommit providers' for the list)", name), nil)
	default:
		return nil, newError(KindUnknownProvider, name, 0, "unhandled provider variant", nil)
	}
}
