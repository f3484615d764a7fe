package categorize

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/model"
)

func TestSuggestDefaults(t *testing.T) {
	c := &Categorizer{rules: DefaultRules()}

	cases := []struct {
		desc string
		want model.Category
	}{
		{"Monthly salary March", model.CategoryIncome},
		{"Electricity provider", model.CategoryBill},
		{"GROCERIES at the corner shop", model.CategoryEssential},
		{"Netflix subscription", model.CategoryNonEssential},
		{"Transfer to emergency fund", model.CategorySavings},
	}
	for _, tc := range cases {
		got, ok := c.Suggest(tc.desc)
		require.True(t, ok, "no suggestion for %q", tc.desc)
		assert.Equal(t, tc.want, got, "description %q", tc.desc)
	}
}

func TestSuggestNoMatch(t *testing.T) {
	c := &Categorizer{rules: DefaultRules()}

	_, ok := c.Suggest("zzz unmatched zzz")
	assert.False(t, ok)

	_, ok = c.Suggest("   ")
	assert.False(t, ok)
}

func TestSuggestRuleOrderWins(t *testing.T) {
	c := &Categorizer{rules: []Rule{
		{Category: model.CategoryBill, Keywords: []string{"internet"}},
		{Category: model.CategoryNonEssential, Keywords: []string{"internet cafe"}},
	}}

	got, ok := c.Suggest("internet cafe downtown")
	require.True(t, ok)
	assert.Equal(t, model.CategoryBill, got)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	c, err := Load(Path(t.TempDir()))
	require.NoError(t, err)
	assert.Equal(t, DefaultRules(), c.Rules())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := Path(t.TempDir())
	rules := []Rule{
		{Category: model.CategoryEssential, Keywords: []string{"rent", "bakery"}},
		{Category: model.CategorySavings, Keywords: []string{"vault"}},
	}
	require.NoError(t, Save(path, rules))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, rules, c.Rules())

	got, ok := c.Suggest("Bakery run")
	require.True(t, ok)
	assert.Equal(t, model.CategoryEssential, got)
}

func TestLoadNormalizesAliases(t *testing.T) {
	dir := t.TempDir()
	path := Path(dir)
	doc := "rules:\n  - category: essentials\n    keywords: [rent]\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	require.Len(t, c.Rules(), 1)
	assert.Equal(t, model.CategoryEssential, c.Rules()[0].Category)
}

func TestLoadRejectsUnknownCategory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "categories.yaml")
	doc := "rules:\n  - category: splurge\n    keywords: [stuff]\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "splurge")
}

func TestSaveRejectsUnknownCategory(t *testing.T) {
	err := Save(Path(t.TempDir()), []Rule{{Category: "splurge", Keywords: []string{"x"}}})
	require.Error(t, err)
}
