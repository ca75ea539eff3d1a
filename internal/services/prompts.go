package services

import (
	"fmt"
	"strings"
)

func buildHealthyImagePrompt(dishDescription string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create a beautiful, appetizing image of a healthy, oil-free version of this Indian dish: %s.\n", dishDescription)
	b.WriteString("The dish should look delicious and authentic, but prepared using healthy cooking methods with minimal oil.\n")
	b.WriteString("Show the dish plated attractively with vibrant colors and fresh ingredients.")
	return b.String()
}

func buildHealthyRecipePrompt(dishDescription string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create a detailed, healthy oil-free recipe for this Indian dish: %s.\n", dishDescription)
	b.WriteString("Include:\n")
	b.WriteString("- List of ingredients with quantities\n")
	b.WriteString("- Step-by-step cooking instructions\n")
	b.WriteString("- Cooking time and servings\n")
	b.WriteString("- Tips for making it healthier without oil\n")
	b.WriteString("Keep it authentic to Indian cuisine but focus on healthy cooking methods.")
	return b.String()
}
