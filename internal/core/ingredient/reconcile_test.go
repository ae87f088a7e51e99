package ingredient

import (
	"testing"

	"recipe-manager/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func amounts(pairs ...interface{}) []common.IngredientAmount {
	var out []common.IngredientAmount
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, common.IngredientAmount{Item: pairs[i].(string), AmountG: float64(pairs[i+1].(int))})
	}
	return out
}

func TestParseMain(t *testing.T) {
	tests := []struct {
		name string
		flat string
		want []string
	}{
		{"trims and lowercases", " Chicken ,Salt,  PEPPER ", []string{"chicken", "salt", "pepper"}},
		{"drops empty tokens", "chicken,, ,salt,", []string{"chicken", "salt"}},
		{"dedupes keeping first", "salt, chicken, Salt", []string{"salt", "chicken"}},
		{"empty", "   ", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseMain(tt.flat))
		})
	}
}

func TestSyncMainFromFlat(t *testing.T) {
	current := amounts("Chicken", 500, "olive oil", 15, "salt", 5)

	got := SyncMainFromFlat("salt, chicken, garlic", current)

	assert.Equal(t, amounts("salt", 5, "Chicken", 500, "garlic", 0, "olive oil", 15), got)
}

func TestSyncMainFromFlatKeepsManualZeroAmounts(t *testing.T) {
	current := amounts("chicken", 500, "parsley", 0)

	got := SyncMainFromFlat("chicken", current)

	assert.Equal(t, amounts("chicken", 500, "parsley", 0), got)
}

func TestSyncMainFromFlatEmptyFlatLeavesListUnchanged(t *testing.T) {
	current := amounts("chicken", 500, "salt", 5)

	got := SyncMainFromFlat(" , ", current)

	assert.Equal(t, current, got)
	got[0].AmountG = 1
	assert.Equal(t, float64(500), current[0].AmountG, "result must not alias the input")
}

func TestSyncMainFromFlatSkipsDuplicateManualEntries(t *testing.T) {
	current := amounts("chicken", 500, "Chicken", 300, "basil", 2, "BASIL", 4)

	got := SyncMainFromFlat("chicken", current)

	assert.Equal(t, amounts("chicken", 500, "basil", 2), got)
}

func TestSyncMainFromFlatIsIdempotent(t *testing.T) {
	cases := []struct {
		flat    string
		current []common.IngredientAmount
	}{
		{"chicken, salt", amounts("salt", 5, "pepper", 1)},
		{"Salt,salt, rice", amounts("RICE", 200, "salt", 3, "rice", 100)},
		{"", amounts("water", 250)},
		{"a,b,c", nil},
		{"beef", amounts("", 0, "", 3, "beef", 400)},
	}
	for _, c := range cases {
		once := SyncMainFromFlat(c.flat, c.current)
		twice := SyncMainFromFlat(c.flat, once)
		assert.Equal(t, once, twice, "flat=%q", c.flat)
	}
}

func TestRenameIngredientMain(t *testing.T) {
	list := amounts("chicken", 500, "salt", 5)

	newList, flat, err := RenameIngredient(list, 0, "turkey", "Chicken, salt")
	require.NoError(t, err)

	assert.Equal(t, "turkey, salt", flat)
	assert.Equal(t, "turkey", newList[0].Item)
	assert.Equal(t, float64(500), newList[0].AmountG)
	assert.Equal(t, "chicken", list[0].Item, "input list must not be modified")
}

func TestRenameIngredientTrimsNewName(t *testing.T) {
	newList, flat, err := RenameIngredient(amounts("chicken", 500, "rice", 200), 0, "  turkey  ", "chicken, rice")
	require.NoError(t, err)

	assert.Equal(t, "turkey, rice", flat)
	assert.Equal(t, "turkey", newList[0].Item)
}

func TestRenameIngredientManualLeavesFlat(t *testing.T) {
	list := amounts("chicken", 500, "parsley", 3)

	newList, flat, err := RenameIngredient(list, 1, "cilantro", "chicken")
	require.NoError(t, err)

	assert.Equal(t, "chicken", flat)
	assert.Equal(t, "cilantro", newList[1].Item)
}

func TestRenameIngredientOutOfRange(t *testing.T) {
	_, _, err := RenameIngredient(amounts("salt", 1), 3, "x", "salt")
	require.Error(t, err)
	assert.True(t, common.IsValidationError(err))
}

func TestRemoveIngredientMain(t *testing.T) {
	list := amounts("chicken", 500, "salt", 5, "parsley", 2)

	newList, flat, err := RemoveIngredient(list, 1, "chicken, Salt")
	require.NoError(t, err)

	assert.Equal(t, "chicken", flat)
	assert.Equal(t, amounts("chicken", 500, "parsley", 2), newList)
}

func TestRemoveIngredientManualNeverAltersFlat(t *testing.T) {
	flats := []string{"chicken, salt", " Chicken ,salt ", "", "a,,b"}
	for _, f := range flats {
		list := amounts("chicken", 500, "salt", 5, "parsley", 2)
		_, flat, err := RemoveIngredient(list, 2, f)
		require.NoError(t, err)
		assert.Equal(t, f, flat)
	}
}

func TestAddMainIngredient(t *testing.T) {
	main, list, added := AddMainIngredient("  Garlic ", []string{"chicken"}, amounts("chicken", 500))
	assert.True(t, added)
	assert.Equal(t, []string{"chicken", "garlic"}, main)
	assert.Equal(t, amounts("chicken", 500, "garlic", 0), list)

	main, list, added = AddMainIngredient("CHICKEN", main, list)
	assert.False(t, added)
	assert.Equal(t, []string{"chicken", "garlic"}, main)
	assert.Len(t, list, 2)

	_, _, added = AddMainIngredient("   ", main, list)
	assert.False(t, added)
}

func TestAddMainIngredientReusesExistingEntry(t *testing.T) {
	main, list, added := AddMainIngredient("parsley", nil, amounts("parsley", 4))

	assert.True(t, added)
	assert.Equal(t, []string{"parsley"}, main)
	assert.Equal(t, amounts("parsley", 4), list)
}

func TestIsMainIngredient(t *testing.T) {
	assert.True(t, IsMainIngredient("Chicken, salt", "chicken"))
	assert.True(t, IsMainIngredient("Chicken, salt", " SALT "))
	assert.False(t, IsMainIngredient("Chicken, salt", "pepper"))
	assert.False(t, IsMainIngredient("Chicken, salt", ""))
}
