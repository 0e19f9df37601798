package ai

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/thomas-vilte/aigit/internal/textutil"
)

// PromptKind selects the template used by BuildPrompt.
type PromptKind int

const (
	PromptCommit PromptKind = iota
	PromptReview
)

func (k PromptKind) String() string {
	switch k {
	case PromptCommit:
		return "commit"
	case PromptReview:
		return "review"
	default:
		return fmt.Sprintf("PromptKind(%d)", int(k))
	}
}

const (
	DefaultMaxPromptLength = 16000

	// AnalyzerPlaceholder stands in for analyzer output when there is none.
	AnalyzerPlaceholder = "Static analysis unavailable."
)

// PromptOptions holds the values interpolated next to the content.
type PromptOptions struct {
	Language        string
	CommitTypes     []string
	MaxCommitLength int
	AnalyzerOutput  string
	MaxPromptLength int
}

// PromptData holds the parameters for template rendering
type PromptData struct {
	Diff           string
	Types          string
	MaxLength      int
	AnalyzerOutput string
}

// RenderPrompt renders a prompt template with the provided data
func RenderPrompt(name, tmplStr string, data interface{}) (string, error) {
	tmpl, err := template.New(name).Parse(tmplStr)
	if err != nil {
		return "", fmt.Errorf("error parsing template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("error executing template %s: %w", name, err)
	}

	return buf.String(), nil
}

const (
	commitPromptTemplateEN = `Generate a concise git commit message for these changes:

{{.Diff}}

Follow conventional commits format (type: description).
Types: {{.Types}}.
Keep it under {{.MaxLength}} characters.
Return ONLY the commit message, nothing else.`

	commitPromptTemplateES = `Genera un mensaje de commit de git conciso para estos cambios:

{{.Diff}}

Sigue el formato de conventional commits (tipo: descripción).
Tipos: {{.Types}}.
Mantenlo por debajo de {{.MaxLength}} caracteres.
Devuelve SOLO el mensaje de commit, nada más.`
)

const (
	reviewPromptTemplateEN = `You are a senior engineer reviewing a pull request. Provide:
1) One-line summary of change.
2) Up to 3 potential issues with file + line hints.
3) Short suggested fix or command to run tests.
4) Confidence level (low/medium/high) with reason.

Static analyzer output:
{{.AnalyzerOutput}}

DIFF:
{{.Diff}}`

	reviewPromptTemplateES = `Eres un ingeniero senior revisando un pull request. Proporciona:
1) Un resumen del cambio en una línea.
2) Hasta 3 posibles problemas con pistas de archivo + línea.
3) Una corrección sugerida breve o el comando para correr los tests.
4) Nivel de confianza (bajo/medio/alto) con el motivo.

Salida del analizador estático:
{{.AnalyzerOutput}}

DIFF:
{{.Diff}}`
)

func GetCommitPromptTemplate(lang string) string {
	switch lang {
	case "es":
		return commitPromptTemplateES
	default:
		return commitPromptTemplateEN
	}
}

func GetReviewPromptTemplate(lang string) string {
	switch lang {
	case "es":
		return reviewPromptTemplateES
	default:
		return reviewPromptTemplateEN
	}
}

// BuildPrompt renders the template for kind around content and truncates the
// result to MaxPromptLength bytes without splitting a rune.
func BuildPrompt(kind PromptKind, content string, opts PromptOptions) (string, error) {
	maxLen := opts.MaxPromptLength
	if maxLen <= 0 {
		maxLen = DefaultMaxPromptLength
	}

	var (
		tmpl string
		data PromptData
	)

	switch kind {
	case PromptCommit:
		tmpl = GetCommitPromptTemplate(opts.Language)
		data = PromptData{
			Diff:      content,
			Types:     strings.Join(opts.CommitTypes, ", "),
			MaxLength: opts.MaxCommitLength,
		}
	case PromptReview:
		analyzerOutput := strings.TrimSpace(opts.AnalyzerOutput)
		if analyzerOutput == "" {
			analyzerOutput = AnalyzerPlaceholder
		}
		tmpl = GetReviewPromptTemplate(opts.Language)
		data = PromptData{
			Diff:           content,
			AnalyzerOutput: analyzerOutput,
		}
	default:
		return "", fmt.Errorf("unknown prompt kind: %s", kind)
	}

	prompt, err := RenderPrompt(kind.String(), tmpl, data)
	if err != nil {
		return "", err
	}

	return textutil.Truncate(strings.TrimSpace(prompt), maxLen), nil
}
