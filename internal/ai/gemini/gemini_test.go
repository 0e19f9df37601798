package gemini

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	domainErrors "github.com/thomas-vilte/aigit/internal/errors"
	"google.golang.org/genai"
)

type MockModels struct {
	mock.Mock
}

func (m *MockModels) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	args := m.Called(ctx, model, contents, config)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*genai.GenerateContentResponse), args.Error(1)
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: genai.NewContentFromText(text, genai.RoleModel),
		}},
		UsageMetadata: &genai.GenerateContentResponseUsageMetadata{
			PromptTokenCount:     7,
			CandidatesTokenCount: 3,
			TotalTokenCount:      10,
		},
	}
}

func TestNew_MissingAPIKey(t *testing.T) {
	gen, err := New(context.Background(), Options{Model: "gemini-2.5-flash"})

	assert.Nil(t, gen)
	assert.True(t, errors.Is(err, domainErrors.ErrMissingCredential))
}

func TestGenerator_Generate(t *testing.T) {
	ctx := context.Background()

	t.Run("returns text and usage", func(t *testing.T) {
		m := new(MockModels)
		m.On("GenerateContent", ctx, "gemini-2.5-flash", genai.Text("prompt"), mock.Anything).
			Return(textResponse("fix: handle nil"), nil)

		gen := newGenerator(m, Options{Model: "gemini-2.5-flash", Temperature: 0.2})
		resp, err := gen.Generate(ctx, "prompt")

		require.NoError(t, err)
		assert.Equal(t, "fix: handle nil", resp.Text)
		require.NotNil(t, resp.Usage)
		assert.Equal(t, 10, resp.Usage.TotalTokens)
		assert.Equal(t, "gemini", gen.Name())
		m.AssertExpectations(t)
	})

	t.Run("API errors are transient", func(t *testing.T) {
		m := new(MockModels)
		m.On("GenerateContent", ctx, "gemini-2.5-flash", mock.Anything, mock.Anything).
			Return(nil, errors.New("resource exhausted: quota"))

		_, err := newGenerator(m, Options{Model: "gemini-2.5-flash"}).Generate(ctx, "prompt")

		var appErr *domainErrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.True(t, errors.Is(err, domainErrors.ErrTransientCallFailure))
		assert.Contains(t, appErr.Suggestion, "quota")
	})

	t.Run("empty candidates are malformed", func(t *testing.T) {
		m := new(MockModels)
		m.On("GenerateContent", ctx, "gemini-2.5-flash", mock.Anything, mock.Anything).
			Return(&genai.GenerateContentResponse{}, nil)

		_, err := newGenerator(m, Options{Model: "gemini-2.5-flash"}).Generate(ctx, "prompt")

		assert.True(t, errors.Is(err, domainErrors.ErrMalformedResponse))
	})
}
