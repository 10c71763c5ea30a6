package config

import (
	"strings"
)

// Provider identifies an AI backend by name
type Provider string

// Known providers
const (
	ProviderOpenAI     Provider = "openai"
	ProviderGroq       Provider = "groq"
	ProviderMistral    Provider = "mistral"
	ProviderGoogle     Provider = "google"
	ProviderOllama     Provider = "ollama"
	ProviderOpenRouter Provider = "openrouter"
	ProviderCustom     Provider = "custom"
)

// Variant is the wire protocol a provider speaks
type Variant int

const (
	// VariantUnknown is returned for provider names outside the provider table
	VariantUnknown Variant = iota
	// VariantLocal is the local-inference generate API (Ollama)
	VariantLocal
	// VariantOpenAICompatible is the chat completions API
	VariantOpenAICompatible
)

// String returns the string representation of Variant
func (v Variant) String() string {
	switch v {
	case VariantLocal:
		return "local"
	case VariantOpenAICompatible:
		return "openai-compatible"
	default:
		return "unknown"
	}
}

const (
	// OllamaDefaultBaseURL is used when OLLAMA_HOST is not set
	OllamaDefaultBaseURL = "http://localhost:11434"
)

type providerInfo struct {
	variant        Variant
	defaultBaseURL string // empty: nothing is derived
	apiKeyEnv      string // empty: no provider-specific key
	defaultModel   string
}

var providerTable = map[Provider]providerInfo{
	ProviderOpenAI: {
		variant:        VariantOpenAICompatible,
		defaultBaseURL: "https://api.openai.com/v1",
		apiKeyEnv:      "OPENAI_API_KEY",
		defaultModel:   "gpt-4o-mini",
	},
	ProviderGroq: {
		variant:        VariantOpenAICompatible,
		defaultBaseURL: "https://api.groq.com/openai/v1",
		apiKeyEnv:      "GROQ_API_KEY",
		defaultModel:   "llama-3.1-70b-versatile",
	},
	ProviderMistral: {
		variant:        VariantOpenAICompatible,
		defaultBaseURL: "https://api.mistral.ai/v1",
		apiKeyEnv:      "MISTRAL_API_KEY",
		defaultModel:   "mistral-small-latest",
	},
	ProviderGoogle: {
		variant:        VariantOpenAICompatible,
		defaultBaseURL: "https://generativelanguage.googleapis.com/v1beta/openai",
		apiKeyEnv:      "GOOGLE_API_KEY",
		defaultModel:   "gemini-1.5-flash",
	},
	ProviderOllama: {
		variant:        VariantLocal,
		defaultBaseURL: OllamaDefaultBaseURL,
		defaultModel:   "llama3.1",
	},
	ProviderOpenRouter: {
		variant:        VariantOpenAICompatible,
		defaultBaseURL: "https://openrouter.ai/api/v1",
		apiKeyEnv:      "OPENROUTER_API_KEY",
		defaultModel:   "openai/gpt-4o-mini",
	},
	ProviderCustom: {
		variant: VariantOpenAICompatible,
	},
}

// supportedProviders keeps the table in display order
var supportedProviders = []Provider{
	ProviderOpenAI,
	ProviderGroq,
	ProviderMistral,
	ProviderGoogle,
	ProviderOllama,
	ProviderOpenRouter,
	ProviderCustom,
}

// SupportedProviders returns the known providers in display order
func SupportedProviders() []Provider {
	out := make([]Provider, len(supportedProviders))
	copy(out, supportedProviders)
	return out
}

// ParseProvider normalizes a provider name. Unknown names are kept as-is.
func ParseProvider(name string) Provider {
	return Provider(strings.ToLower(strings.TrimSpace(name)))
}

// String returns the provider name
func (p Provider) String() string {
	return string(p)
}

// Known reports whether the provider is in the provider table
func (p Provider) Known() bool {
	_, ok := providerTable[p]
	return ok
}

// Variant returns the wire protocol for the provider
func (p Provider) Variant() Variant {
	info, ok := providerTable[p]
	if !ok {
		return VariantUnknown
	}
	return info.variant
}

// APIKeyEnv returns the provider-specific API key variable name, if any
func (p Provider) APIKeyEnv() string {
	return providerTable[p].apiKeyEnv
}

// DefaultModel returns a suggested model for the provider
func (p Provider) DefaultModel() string {
	return providerTable[p].defaultModel
}

// RequiresAPIKey reports whether requests to this provider need a key.
// The local-inference provider never does.
func (p Provider) RequiresAPIKey() bool {
	return p.Variant() == VariantOpenAICompatible && p != ProviderCustom
}

// DefaultBaseURL returns the default endpoint root for the provider.
// ollamaHost replaces the fixed local-inference default when set.
func (p Provider) DefaultBaseURL(ollamaHost string) string {
	if p == ProviderOllama && strings.TrimSpace(ollamaHost) != "" {
		return normalizeHost(ollamaHost)
	}
	return providerTable[p].defaultBaseURL
}

// normalizeHost accepts OLLAMA_HOST values like "127.0.0.1:11434"
func normalizeHost(host string) string {
	host = strings.TrimRight(strings.TrimSpace(host), "/")
	if !strings.Contains(host, "://") {
		host = "http://" + host
	}
	return host
}
