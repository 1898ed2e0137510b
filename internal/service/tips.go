package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/pageza/glycemic-assist/backend/internal/types"
)

const (
	tipsMaxTokens = 200
	tipCount      = 3
)

// FallbackTips are served whenever personalized tips cannot be generated
var FallbackTips = []string{
	"1. Add lean proteins like chicken or tofu.",
	"2. Include healthy fats like avocado or olive oil.",
	"3. Add more non-starchy vegetables like spinach or broccoli.",
}

// TipsResult always holds exactly three tips
type TipsResult struct {
	Tips         []string
	UsedFallback bool
}

// TipGenerator asks the generative text service for suggestions to lower a meal's glycemic index
type TipGenerator struct {
	llm TextCompleter
}

// NewTipGenerator creates a new TipGenerator instance
func NewTipGenerator(llm TextCompleter) *TipGenerator {
	return &TipGenerator{llm: llm}
}

// GenerateTips returns the first three non-empty lines of the reply. A failed
// call or a reply with fewer than three lines yields FallbackTips.
func (g *TipGenerator) GenerateTips(ctx context.Context, ingredients []types.IngredientInput) TipsResult {
	tips, err := g.generate(ctx, ingredients)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("tip generation failed, using fallback tips")
		return TipsResult{Tips: append([]string(nil), FallbackTips...), UsedFallback: true}
	}
	return TipsResult{Tips: tips}
}

func (g *TipGenerator) generate(ctx context.Context, ingredients []types.IngredientInput) ([]string, error) {
	if g.llm == nil {
		return nil, fmt.Errorf("no generative service configured")
	}

	content, err := g.llm.Complete(ctx, BuildTipsPrompt(ingredients), tipsMaxTokens)
	if err != nil {
		return nil, err
	}

	tips := make([]string, 0, tipCount)
	for _, line := range strings.Split(content, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			tips = append(tips, line)
		}
		if len(tips) == tipCount {
			return tips, nil
		}
	}
	return nil, fmt.Errorf("expected %d tips, got %d", tipCount, len(tips))
}

// BuildTipsPrompt lists the ingredients as "name (weightg)" and asks for three
// numbered tips. Nameless entries are left out, and so is a weight that is not a number.
func BuildTipsPrompt(ingredients []types.IngredientInput) string {
	parts := make([]string, 0, len(ingredients))
	for _, in := range ingredients {
		name := strings.TrimSpace(in.Name)
		if name == "" {
			continue
		}
		if _, err := in.Weight.Float(); err != nil {
			parts = append(parts, name)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s (%sg)", name, strings.TrimSpace(in.Weight.String())))
	}
	return fmt.Sprintf(
		"The meal contains the following ingredients with their respective weights: %s. "+
			"Provide 3 short and specific tips to lower the glycemic index of this meal by suggesting alternative ingredients "+
			"or adjustments to the listed items. Each tip should start with a number (1., 2., 3.).",
		strings.Join(parts, ", "),
	)
}
