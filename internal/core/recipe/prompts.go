package recipe

import (
	"encoding/json"
	"fmt"

	"recipe-manager/internal/pkg/common"
)

const suggestionSystemPrompt = "You are a strict recipe generator that follows ingredient constraints exactly."

const suggestionCountRule = "Provide at least 3 but fewer than 10 recipes that meet this requirement, go as close to 10 as you can unless you cannot make proper recipes that follow the listed requirements."

const suggestionFormat = `Return the recipes in this format:
[ { "name": "Recipe Name", "ingredients": "comma,separated,list" } ]`

// buildSuggestionPrompt one instruction set per flexibility level
func buildSuggestionPrompt(ingredients string, flexibility Flexibility, maxExtras int) string {
	switch flexibility {
	case FlexibilityModerate:
		return fmt.Sprintf(`You are a recipe generator. Use the following ingredients: %s.
You may include up to %d extra COMMON ingredients (like oil, water, salt), NO MORE THAN %d.
%s
Do NOT use specialty or uncommon ingredients.
%s`, ingredients, maxExtras, maxExtras, suggestionCountRule, suggestionFormat)
	case FlexibilityCreative:
		return fmt.Sprintf(`You are a creative recipe generator. Use the following ingredients: %s.
You may include up to %d extra ingredients of any kind if helpful, NO MORE THAN %d.
%s
Make the recipes practical and creative.
%s`, ingredients, maxExtras, maxExtras, suggestionCountRule, suggestionFormat)
	default:
		return fmt.Sprintf(`You are a recipe generator. Use ONLY the following ingredients: %s.
Do NOT use any other ingredients, even if they are common. Ingredients should ONLY be the ones provided.
%s
%s`, ingredients, suggestionCountRule, suggestionFormat)
	}
}

// buildDetailsPrompt asks for ingredients with grams, steps and nutrition
func buildDetailsPrompt(name, ingredients string) string {
	return fmt.Sprintf(`You are a recipe assistant.

Given a recipe name and a list of ingredients, return a JSON object with:
- "ingredients": an array of objects with "item" and "amount_g"
- "instructions": an array of clear cooking steps
- "nutrition": an object with estimated "calories", "protein_g", "fat_g", and "carbs_g"

Do not include any explanation. Only return the JSON object.

Here is the format:

{
  "ingredients": [
    { "item": "chicken", "amount_g": 500 },
    { "item": "salt", "amount_g": 5 }
  ],
  "instructions": [
    "Cut the chicken into bite-sized pieces.",
    "Season with salt.",
    "Cook in a pan over medium heat until golden brown and fully cooked."
  ],
  "nutrition": {
    "calories": 600,
    "protein_g": 55,
    "fat_g": 30,
    "carbs_g": 0
  }
}

Now return the recipe for: %q using these ingredients: %s.`, name, ingredients)
}

// buildNutritionPrompt lists each ingredient with its gram amount
func buildNutritionPrompt(ingredients []common.IngredientAmount) string {
	listing, err := json.MarshalIndent(ingredients, "", "  ")
	if err != nil {
		listing = []byte(common.FormatIngredientAmounts(ingredients))
	}
	return fmt.Sprintf(`You are a certified nutritionist using the USDA FoodData Central database.

Estimate the total nutrition values for the following list of ingredients (with exact gram amounts). Do not guess, use real nutritional data per gram.

Return only this JSON:
{
  "calories": number,
  "protein_g": number,
  "fat_g": number,
  "carbs_g": number
}

Total the values across all ingredients.

Ingredients:
%s`, listing)
}
