package completion_helper

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thomas-vilte/aigit/internal/config"
	domainErrors "github.com/thomas-vilte/aigit/internal/errors"
)

func TestResolveProvider(t *testing.T) {
	p, err := ResolveProvider("", "bedrock")
	require.NoError(t, err)
	assert.Equal(t, config.ProviderBedrock, p)

	p, err = ResolveProvider(" Gemini ", "bedrock")
	require.NoError(t, err)
	assert.Equal(t, config.ProviderGemini, p)

	_, err = ResolveProvider("copilot", "bedrock")
	assert.True(t, errors.Is(err, domainErrors.ErrUnknownProvider))
}
