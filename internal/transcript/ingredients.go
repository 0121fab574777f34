package transcript

import (
	"regexp"
	"strings"
	"unicode"

	"ladle/internal/recipe"
)

// Ingredient lines pair a name with a quantity and unit, either trailing
// (玉ねぎ 200g, にんじん 1本) or with the measure word leading the amount
// (砂糖 大さじ2). Names exclude digits so an unspaced 玉ねぎ200g still splits
// at the quantity.
var (
	ingredientUnitPattern  = regexp.MustCompile(`([^\s\d０-９、。，,．.]+)\s*([0-9０-９]+(?:[./][0-9０-９]+)?)\s*(kg|g|ml|cc|L|個|本|枚|束|袋|缶|丁|片|かけ|玉|尾|切れ|粒|株|合)`)
	ingredientSpoonPattern = regexp.MustCompile(`([^\s\d０-９、。，,．.]+)\s*(大さじ|小さじ|カップ)\s*([0-9０-９]+(?:[./][0-9０-９]+)?)`)
)

// ExtractIngredients scans text for quantity-bearing ingredient mentions and
// returns them as "name amount" strings, deduplicated in first-seen order and
// capped at recipe.MaxIngredients. It never fails; text without quantities
// yields an empty result.
func ExtractIngredients(text string) []string {
	var ingredients []string
	seen := map[string]struct{}{}

	add := func(entry string) {
		if len(ingredients) >= recipe.MaxIngredients {
			return
		}
		if _, ok := seen[entry]; ok {
			return
		}
		seen[entry] = struct{}{}
		ingredients = append(ingredients, entry)
	}

	for _, m := range ingredientUnitPattern.FindAllStringSubmatch(text, -1) {
		name := m[1]
		if !containsLetter(name) {
			continue
		}
		add(name + " " + normalizeDigits(m[2]) + m[3])
	}
	for _, m := range ingredientSpoonPattern.FindAllStringSubmatch(text, -1) {
		name := m[1]
		if !containsLetter(name) {
			continue
		}
		add(name + " " + m[2] + normalizeDigits(m[3]))
	}
	return ingredients
}

// containsLetter reports whether the name portion of a match is more than
// numeric or symbolic noise.
func containsLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

var fullWidthDigits = strings.NewReplacer(
	"０", "0", "１", "1", "２", "2", "３", "3", "４", "4",
	"５", "5", "６", "6", "７", "7", "８", "8", "９", "9",
)

func normalizeDigits(s string) string {
	return fullWidthDigits.Replace(s)
}
