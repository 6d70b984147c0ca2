package adapters

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/budget-tracker/backend/internal/application/adapter"
)

// GeminiService implements the adapter.InsightService using Google Gemini.
type GeminiService struct {
	apiKey    string
	modelName string
}

// NewGeminiService creates a new Gemini service instance.
func NewGeminiService(apiKey string) *GeminiService {
	return &GeminiService{
		apiKey:    apiKey,
		modelName: "gemini-2.5-flash-lite",
	}
}

// IsAvailable checks if the Gemini service is available and properly configured.
func (s *GeminiService) IsAvailable() bool {
	return s.apiKey != ""
}

// YearInsight generates a short commentary on the year's figures.
func (s *GeminiService) YearInsight(ctx context.Context, figures adapter.YearFigures) (string, error) {
	if !s.IsAvailable() {
		return "", fmt.Errorf("gemini service is not configured")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(s.apiKey))
	if err != nil {
		return "", fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(s.modelName)
	model.SetTemperature(0.4)

	resp, err := model.GenerateContent(ctx, genai.Text(s.buildPrompt(figures)))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text, err := extractText(resp)
	if err != nil {
		return "", err
	}
	return text, nil
}

// buildPrompt creates the prompt for Gemini.
func (s *GeminiService) buildPrompt(figures adapter.YearFigures) string {
	var sb strings.Builder

	sb.WriteString(`Voce e um consultor financeiro pessoal. Analise o resumo anual de orcamento abaixo e escreva um comentario curto (3 a 5 frases) em Portugues Brasileiro.

REGRAS:
- Seja direto e pratico, sem jargao financeiro
- Destaque o grupo de gastos mais pesado e se o saldo medio esta saudavel
- Se os gastos passam da renda, alerte com clareza
- Nao invente numeros que nao estao no resumo
- Responda apenas com o texto do comentario, sem titulos nem listas

RESUMO ANUAL:
`)

	sb.WriteString(fmt.Sprintf("- Renda total: R$ %.2f\n", figures.TotalIncome))
	sb.WriteString(fmt.Sprintf("- Gasto total: R$ %.2f\n", figures.TotalExpense))
	sb.WriteString(fmt.Sprintf("- Meses com movimento: %d\n", figures.ActiveMonths))
	sb.WriteString(fmt.Sprintf("- Saldo medio mensal: R$ %.2f\n", figures.AverageBalance))
	sb.WriteString(fmt.Sprintf("- Percentual medio da renda gasto: %.1f%%\n", figures.AveragePercent))

	if len(figures.GroupTotals) > 0 {
		sb.WriteString("\nGASTO POR GRUPO:\n")
		labels := make([]string, 0, len(figures.GroupTotals))
		for label := range figures.GroupTotals {
			labels = append(labels, label)
		}
		sort.Strings(labels)
		for _, label := range labels {
			sb.WriteString(fmt.Sprintf("- %s: R$ %.2f\n", label, figures.GroupTotals[label]))
		}
	}

	return sb.String()
}

// extractText pulls the plain text out of a Gemini response.
func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty response from gemini")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("no text content in response")
	}
	return text, nil
}
