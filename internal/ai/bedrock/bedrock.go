// Package bedrock implements a Generator backed by the AWS Bedrock Converse API.
package bedrock

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
	"github.com/thomas-vilte/aigit/internal/ai"
	domainErrors "github.com/thomas-vilte/aigit/internal/errors"
	"github.com/thomas-vilte/aigit/internal/logger"
	"github.com/thomas-vilte/aigit/internal/models"
)

var _ ai.Generator = (*Generator)(nil)

// converser is the subset of *bedrockruntime.Client used here.
type converser interface {
	Converse(ctx context.Context, params *bedrockruntime.ConverseInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.ConverseOutput, error)
}

type Generator struct {
	client      converser
	modelID     string
	maxTokens   int32
	temperature float32
}

type Options struct {
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	ModelID         string
	MaxTokens       int
	Temperature     float32
}

// New builds a client from a static credential pair. Both halves of the pair
// are required.
func New(ctx context.Context, opts Options) (*Generator, error) {
	var missing []string
	if opts.AccessKeyID == "" {
		missing = append(missing, "AWS_ACCESS_KEY_ID")
	}
	if opts.SecretAccessKey == "" {
		missing = append(missing, "AWS_SECRET_ACCESS_KEY")
	}
	if len(missing) > 0 {
		return nil, domainErrors.ErrMissingCredential.
			WithMessage("Missing required environment variables: " + strings.Join(missing, ", ")).
			WithContext("provider", "bedrock")
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(opts.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, ""),
		),
	)
	if err != nil {
		return nil, domainErrors.ErrInvalidConfig.WithMessage("failed to load AWS configuration").WithError(err)
	}

	return newGenerator(bedrockruntime.NewFromConfig(cfg), opts), nil
}

func newGenerator(client converser, opts Options) *Generator {
	return &Generator{
		client:      client,
		modelID:     opts.ModelID,
		maxTokens:   int32(opts.MaxTokens),
		temperature: opts.Temperature,
	}
}

func (g *Generator) Name() string {
	return "bedrock"
}

func (g *Generator) Generate(ctx context.Context, prompt string) (models.AIResponse, error) {
	input := &bedrockruntime.ConverseInput{
		ModelId: aws.String(g.modelID),
		Messages: []types.Message{{
			Role: types.ConversationRoleUser,
			Content: []types.ContentBlock{
				&types.ContentBlockMemberText{Value: prompt},
			},
		}},
	}
	// unset fields fall back to the model defaults
	cfg := &types.InferenceConfiguration{}
	if g.maxTokens > 0 {
		cfg.MaxTokens = aws.Int32(g.maxTokens)
	}
	if g.temperature > 0 {
		cfg.Temperature = aws.Float32(g.temperature)
	}
	if cfg.MaxTokens != nil || cfg.Temperature != nil {
		input.InferenceConfig = cfg
	}

	out, err := g.client.Converse(ctx, input)
	if err != nil {
		logger.Debug(ctx, "bedrock converse failed", "error", err, "model", g.modelID)
		return models.AIResponse{}, domainErrors.ErrTransientCallFailure.
			WithError(err).
			WithContext("model", g.modelID)
	}

	text := outputText(out)
	if text == "" {
		return models.AIResponse{}, domainErrors.ErrMalformedResponse.
			WithContext("model", g.modelID)
	}

	return models.AIResponse{Text: text, Usage: extractUsage(out.Usage)}, nil
}

// outputText returns the first text block of the output message.
func outputText(out *bedrockruntime.ConverseOutput) string {
	if out == nil {
		return ""
	}
	msg, ok := out.Output.(*types.ConverseOutputMemberMessage)
	if !ok {
		return ""
	}
	for _, block := range msg.Value.Content {
		if text, ok := block.(*types.ContentBlockMemberText); ok && strings.TrimSpace(text.Value) != "" {
			return text.Value
		}
	}
	return ""
}

func extractUsage(u *types.TokenUsage) *models.TokenUsage {
	if u == nil {
		return nil
	}
	return &models.TokenUsage{
		InputTokens:  int(aws.ToInt32(u.InputTokens)),
		OutputTokens: int(aws.ToInt32(u.OutputTokens)),
		TotalTokens:  int(aws.ToInt32(u.TotalTokens)),
	}
}
