package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/framelight/studio-api/internal/domain"
)

// Generator wraps the raw text client with prompt construction, JSON
// extraction and schema validation for the studio's generation features.
type Generator struct {
	client   *Client
	validate *validator.Validate
	logger   *zap.Logger
}

func NewGenerator(client *Client, logger *zap.Logger) *Generator {
	return &Generator{
		client:   client,
		validate: validator.New(),
		logger:   logger,
	}
}

// IsConfigured reports whether generation is available at all
func (g *Generator) IsConfigured() bool {
	return g.client.IsConfigured()
}

// GenerateProposalItems suggests line items for a project. Model output
// is parsed as JSON and validated; a malformed response is retried once
// before giving up.
func (g *Generator) GenerateProposalItems(ctx context.Context, projectTitle, tone string) ([]domain.GeneratedProposalItem, error) {
	if tone == "" {
		tone = "corporate"
	}
	prompt := fmt.Sprintf(`You are a producer at a video production studio preparing a proposal.
Project: %q
Tone: %s

Suggest 4 to 8 line items for the proposal. Respond with ONLY a JSON array, no prose, where each element has:
  "description" (string), "quantity" (number > 0), "unitPrice" (number >= 0, in EUR).`, projectTitle, tone)

	items, err := g.proposalItemsOnce(ctx, prompt)
	if err == nil {
		return items, nil
	}
	if !errors.Is(err, errMalformedOutput) {
		return nil, err
	}

	// Malformed output, ask once more with a corrective prompt
	g.logger.Warn("proposal item generation produced invalid output, retrying", zap.Error(err))
	retryPrompt := prompt + "\n\nYour previous response was not a valid JSON array matching this schema. Respond again with ONLY the JSON array and nothing else."
	return g.proposalItemsOnce(ctx, retryPrompt)
}

// errMalformedOutput marks failures worth one retry: the call itself
// succeeded but the model returned something unusable
var errMalformedOutput = errors.New("malformed model output")

func (g *Generator) proposalItemsOnce(ctx context.Context, prompt string) ([]domain.GeneratedProposalItem, error) {
	text, err := g.client.GenerateText(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var items []domain.GeneratedProposalItem
	if err := json.Unmarshal([]byte(ExtractJSON(text)), &items); err != nil {
		return nil, fmt.Errorf("%w: failed to parse generated items: %v", errMalformedOutput, err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: generated item list is empty", errMalformedOutput)
	}
	for i, item := range items {
		if err := g.validate.Struct(item); err != nil {
			return nil, fmt.Errorf("%w: generated item %d failed validation: %v", errMalformedOutput, i, err)
		}
	}
	return items, nil
}

// GenerateShotList suggests scenes for a shoot
func (g *Generator) GenerateShotList(ctx context.Context, shootTitle, description string) ([]domain.GeneratedScene, error) {
	prompt := fmt.Sprintf(`You are a director of photography planning a shoot.
Shoot: %q
Brief: %s

Suggest 5 to 10 shots. Respond with ONLY a JSON array, no prose, where each element has:
  "sceneNumber" (integer, starting at 1), "description" (string), "angle" (string), "duration" (string like "30s").`, shootTitle, description)

	text, err := g.client.GenerateText(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var scenes []domain.GeneratedScene
	if err := json.Unmarshal([]byte(ExtractJSON(text)), &scenes); err != nil {
		return nil, fmt.Errorf("failed to parse generated shot list: %w", err)
	}
	if len(scenes) == 0 {
		return nil, fmt.Errorf("generated shot list is empty")
	}
	return scenes, nil
}

// GenerateEquipmentList suggests gear for a shoot. Callers fall back to
// a static list when this fails.
func (g *Generator) GenerateEquipmentList(ctx context.Context, shootTitle, description string) ([]string, error) {
	prompt := fmt.Sprintf(`You are a camera assistant packing for a shoot.
Shoot: %q
Brief: %s

List the equipment to bring. Respond with ONLY a JSON array of strings, no prose.`, shootTitle, description)

	text, err := g.client.GenerateText(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var equipment []string
	if err := json.Unmarshal([]byte(ExtractJSON(text)), &equipment); err != nil {
		return nil, fmt.Errorf("failed to parse generated equipment list: %w", err)
	}
	if len(equipment) == 0 {
		return nil, fmt.Errorf("generated equipment list is empty")
	}
	return equipment, nil
}

// GenerateDashboardSummary writes a short plain-text narrative over the
// current metrics
func (g *Generator) GenerateDashboardSummary(ctx context.Context, metrics *domain.DashboardMetrics) (string, error) {
	payload, err := json.Marshal(metrics)
	if err != nil {
		return "", fmt.Errorf("failed to marshal metrics: %w", err)
	}

	prompt := fmt.Sprintf(`You are summarizing the current state of a small video production studio for its owner.
Metrics (JSON): %s

Write 2 to 4 plain sentences. Mention pipeline value, open work and anything overdue. No markdown, no lists.`, payload)

	text, err := g.client.GenerateText(ctx, prompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// ExtractJSON strips markdown code fences and surrounding prose from
// model output, returning the outermost JSON array or object. Models
// wrap JSON in fences often enough that this is always applied.
func ExtractJSON(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
	}

	// Trim prose around the payload
	start := strings.IndexAny(text, "[{")
	if start < 0 {
		return text
	}
	var end int
	if text[start] == '[' {
		end = strings.LastIndex(text, "]")
	} else {
		end = strings.LastIndex(text, "}")
	}
	if end <= start {
		return text
	}
	return text[start : end+1]
}
