package config

// Provider names an inference backend.
type Provider string

const (
	ProviderBedrock Provider = "bedrock"
	ProviderChat    Provider = "chat"
	ProviderGemini  Provider = "gemini"
)

func SupportedProviders() []Provider {
	return []Provider{
		ProviderBedrock,
		ProviderChat,
		ProviderGemini,
	}
}

func IsSupportedProvider(p Provider) bool {
	for _, s := range SupportedProviders() {
		if s == p {
			return true
		}
	}
	return false
}
