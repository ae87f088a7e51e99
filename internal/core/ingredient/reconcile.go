// Package ingredient keeps the flat main-ingredient summary of a recipe and its
// structured ingredient list consistent while either side is edited.
//
// The flat summary is a comma separated string ("chicken, salt"). Its tokens are
// the main ingredients. Structured entries whose item is not a main ingredient
// are manual ingredients and are never dropped by these operations.
package ingredient

import (
	"fmt"
	"strings"

	"recipe-manager/internal/pkg/common"
)

// Separator joins main ingredients back into the flat summary
const Separator = ", "

// normalize is the identity used for every comparison
func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ParseMain splits the flat summary into canonical main ingredients:
// trimmed, lower-cased, empty tokens dropped, first occurrence wins.
func ParseMain(flat string) []string {
	seen := make(map[string]bool)
	var main []string
	for _, token := range strings.Split(flat, ",") {
		token = normalize(token)
		if token == "" || seen[token] {
			continue
		}
		seen[token] = true
		main = append(main, token)
	}
	return main
}

// JoinMain renders main ingredients as a flat summary
func JoinMain(main []string) string {
	return strings.Join(main, Separator)
}

// IsMainIngredient reports whether item appears in the flat summary
func IsMainIngredient(flat, item string) bool {
	target := normalize(item)
	if target == "" {
		return false
	}
	for _, token := range strings.Split(flat, ",") {
		if normalize(token) == target {
			return true
		}
	}
	return false
}

// SyncMainFromFlat rebuilds the structured list after the flat summary changed.
// Main ingredients come first in flat order, reusing an existing entry (and its
// amount) when one matches, otherwise a zero-gram entry. Remaining manual
// entries follow in their previous order. A flat summary without tokens leaves
// the list as it was.
func SyncMainFromFlat(flat string, current []common.IngredientAmount) []common.IngredientAmount {
	main := ParseMain(flat)
	if len(main) == 0 {
		return append([]common.IngredientAmount(nil), current...)
	}

	out := make([]common.IngredientAmount, 0, len(main)+len(current))
	included := make(map[string]bool, len(main)+len(current))

	for _, token := range main {
		entry := common.IngredientAmount{Item: token}
		for _, existing := range current {
			if normalize(existing.Item) == token {
				entry = existing
				break
			}
		}
		out = append(out, entry)
		included[token] = true
	}

	for _, existing := range current {
		key := normalize(existing.Item)
		if included[key] {
			continue
		}
		out = append(out, existing)
		included[key] = true
	}

	return out
}

// RenameIngredient renames the structured entry at index. When the old name is a
// main ingredient the matching flat tokens are replaced too; a manual entry
// leaves the flat summary untouched.
func RenameIngredient(list []common.IngredientAmount, index int, newName, flat string) ([]common.IngredientAmount, string, error) {
	if index < 0 || index >= len(list) {
		return nil, "", common.NewValidationError(fmt.Sprintf("ingredient index %d out of range", index))
	}

	newName = strings.TrimSpace(newName)
	out := append([]common.IngredientAmount(nil), list...)
	oldName := out[index].Item
	out[index].Item = newName

	if normalize(oldName) == "" || !IsMainIngredient(flat, oldName) {
		return out, flat, nil
	}

	target := normalize(oldName)
	var tokens []string
	for _, token := range strings.Split(flat, ",") {
		token = strings.TrimSpace(token)
		if strings.ToLower(token) == target {
			token = newName
		}
		if token != "" {
			tokens = append(tokens, token)
		}
	}
	return out, JoinMain(tokens), nil
}

// RemoveIngredient deletes the structured entry at index. If its item is a main
// ingredient every flat token equal to it is removed as well.
func RemoveIngredient(list []common.IngredientAmount, index int, flat string) ([]common.IngredientAmount, string, error) {
	if index < 0 || index >= len(list) {
		return nil, "", common.NewValidationError(fmt.Sprintf("ingredient index %d out of range", index))
	}

	removed := list[index]
	out := make([]common.IngredientAmount, 0, len(list)-1)
	out = append(out, list[:index]...)
	out = append(out, list[index+1:]...)

	if normalize(removed.Item) == "" || !IsMainIngredient(flat, removed.Item) {
		return out, flat, nil
	}

	target := normalize(removed.Item)
	var tokens []string
	for _, token := range strings.Split(flat, ",") {
		token = strings.TrimSpace(token)
		if token == "" || strings.ToLower(token) == target {
			continue
		}
		tokens = append(tokens, token)
	}
	return out, JoinMain(tokens), nil
}

// AddMainIngredient appends token to the main set and makes sure a structured
// entry exists for it. Empty or already present tokens are a no-op.
func AddMainIngredient(token string, main []string, list []common.IngredientAmount) ([]string, []common.IngredientAmount, bool) {
	item := normalize(token)
	if item == "" {
		return main, list, false
	}
	for _, m := range main {
		if normalize(m) == item {
			return main, list, false
		}
	}

	newMain := append(append([]string(nil), main...), item)
	newList := append([]common.IngredientAmount(nil), list...)
	for _, existing := range newList {
		if normalize(existing.Item) == item {
			return newMain, newList, true
		}
	}
	newList = append(newList, common.IngredientAmount{Item: item})
	return newMain, newList, true
}
