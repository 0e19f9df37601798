package ai

import (
	"strings"

	domainErrors "github.com/thomas-vilte/aigit/internal/errors"
	"github.com/thomas-vilte/aigit/internal/models"
	"github.com/thomas-vilte/aigit/internal/textutil"
	"github.com/tidwall/gjson"
)

const eventPrefix = "data:"

// textPaths are tried in order; the first non-empty string wins.
var textPaths = []string{
	"choices.0.message.content",
	"choices.0.text",
	"output.message.content.0.text",
	"generated_text",
}

// ResponseBody is a raw inference response in one of the supported encodings.
// The concrete types are StructuredBody and EventStreamBody.
type ResponseBody interface {
	isResponseBody()
}

// StructuredBody is a single JSON object.
type StructuredBody struct {
	JSON string
}

// EventStreamBody is a server-sent-event stream of data: lines.
type EventStreamBody struct {
	Lines []string
}

func (StructuredBody) isResponseBody()  {}
func (EventStreamBody) isResponseBody() {}

// ParseResponseBody classifies raw by its leading data: prefix.
func ParseResponseBody(raw []byte) ResponseBody {
	s := string(raw)
	if strings.HasPrefix(strings.TrimLeft(s, " \t\r\n"), eventPrefix) {
		return EventStreamBody{Lines: strings.Split(s, "\n")}
	}
	return StructuredBody{JSON: s}
}

// DecodeResponse parses and decodes raw in one step.
func DecodeResponse(raw []byte) (models.AIResponse, error) {
	return Decode(ParseResponseBody(raw))
}

// Decode extracts the generated text and usage from body. A body without
// generated text is ErrMalformedResponse.
func Decode(body ResponseBody) (models.AIResponse, error) {
	switch b := body.(type) {
	case StructuredBody:
		return decodeStructured(b)
	case EventStreamBody:
		return decodeEventStream(b)
	default:
		return models.AIResponse{}, domainErrors.ErrMalformedResponse.
			WithMessage("unsupported response encoding")
	}
}

func decodeStructured(b StructuredBody) (models.AIResponse, error) {
	if !gjson.Valid(b.JSON) {
		return models.AIResponse{}, domainErrors.ErrMalformedResponse.
			WithMessage("response is not valid JSON").
			WithContext("body", textutil.Preview(b.JSON, 500))
	}

	doc := gjson.Parse(b.JSON)
	if !doc.IsObject() {
		return models.AIResponse{}, domainErrors.ErrMalformedResponse.
			WithMessage("response is not a JSON object").
			WithContext("body", textutil.Preview(b.JSON, 500))
	}

	var text string
	for _, path := range textPaths {
		if r := doc.Get(path); r.Type == gjson.String && r.Str != "" {
			text = r.Str
			break
		}
	}
	if strings.TrimSpace(text) == "" {
		return models.AIResponse{}, domainErrors.ErrMalformedResponse.
			WithMessage("response contains no generated text").
			WithContext("body", textutil.Preview(b.JSON, 500))
	}

	return models.AIResponse{Text: text, Usage: extractUsage(doc)}, nil
}

func decodeEventStream(b EventStreamBody) (models.AIResponse, error) {
	var sb strings.Builder
	for _, line := range b.Lines {
		line = strings.TrimRight(line, "\r")
		if !strings.HasPrefix(line, eventPrefix) {
			continue
		}
		payload := strings.TrimSpace(strings.TrimPrefix(line, eventPrefix))
		if payload == "" || payload == "[DONE]" || !gjson.Valid(payload) {
			continue
		}
		sb.WriteString(eventToken(gjson.Parse(payload)))
	}

	if strings.TrimSpace(sb.String()) == "" {
		return models.AIResponse{}, domainErrors.ErrMalformedResponse.
			WithMessage("event stream contains no tokens")
	}
	return models.AIResponse{Text: sb.String()}, nil
}

func eventToken(event gjson.Result) string {
	token := event.Get("token")
	switch {
	case token.Type == gjson.String:
		return token.Str
	case token.IsObject():
		return token.Get("text").String()
	}
	return event.Get("choices.0.delta.content").String()
}

func extractUsage(doc gjson.Result) *models.TokenUsage {
	usage := doc.Get("usage")
	if !usage.IsObject() {
		return nil
	}

	u := &models.TokenUsage{
		InputTokens:  int(firstInt(usage, "prompt_tokens", "inputTokens")),
		OutputTokens: int(firstInt(usage, "completion_tokens", "outputTokens")),
		TotalTokens:  int(firstInt(usage, "total_tokens", "totalTokens")),
	}
	if u.TotalTokens == 0 {
		u.TotalTokens = u.InputTokens + u.OutputTokens
	}
	if *u == (models.TokenUsage{}) {
		return nil
	}
	return u
}

func firstInt(r gjson.Result, paths ...string) int64 {
	for _, p := range paths {
		if v := r.Get(p); v.Exists() {
			return v.Int()
		}
	}
	return 0
}
