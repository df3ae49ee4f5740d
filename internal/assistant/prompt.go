// ABOUTME: Prompt assembly for grounded and fallback responses
// ABOUTME: Embeds the literal user query plus matched product details
package assistant

import (
	"fmt"

	"github.com/harper/vocalmart/internal/models"
)

// GroundedPrompt builds the generation prompt for a matched product. It
// embeds the literal user query, the product's name, description, and
// feature list, and asks for a conversational recommendation.
func GroundedPrompt(query string, product *models.Product) string {
	return fmt.Sprintf(
		"User asked: %q. Recommend the %s: %s. Features: %s. Keep it conversational and helpful.",
		query, product.Name, product.Description, product.FeatureList(),
	)
}

// FallbackPrompt builds the generation prompt for the no-match case,
// asking the generator to clarify or explain the available categories.
func FallbackPrompt(query string) string {
	return fmt.Sprintf(
		"User asked: %q. Help them understand our product options or ask for more specific requirements.",
		query,
	)
}
