package seed_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pageza/allerfree/backend/internal/seed"
	"github.com/pageza/allerfree/backend/internal/service"
	"github.com/pageza/allerfree/backend/internal/testhelpers"
	"github.com/pageza/allerfree/backend/internal/types"
)

func fixturePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(filepath.Dir(testhelpers.MigrationsDir()), "seed", "recipes.yaml")
}

func TestLoadBundledFixture(t *testing.T) {
	f, err := seed.Load(fixturePath(t))
	require.NoError(t, err)

	require.Len(t, f.Users, 2)
	require.Len(t, f.Recipes, 3)

	curry := f.Recipes[0]
	assert.Equal(t, "seed|allerfree-kitchen", curry.Author)
	assert.Equal(t, types.CuisineIndian, curry.Cuisine)
	assert.Equal(t, types.Ingredient{Item: "Red lentils", Amount: "1 cup"}, curry.Ingredients[0])
	require.NotNil(t, curry.NutritionFacts)
	assert.Equal(t, "18g", curry.NutritionFacts.Protein)
	require.NotNil(t, curry.AllergenInfo.EggFree)
	assert.True(t, *curry.AllergenInfo.EggFree)
	assert.Nil(t, f.Recipes[1].AllergenInfo.EggFree)
}

func TestApplyIsRepeatable(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	recipes := service.NewRecipeService(db, zap.NewNop())
	ctx := context.Background()

	f, err := seed.Load(fixturePath(t))
	require.NoError(t, err)

	res, err := seed.Apply(ctx, db, recipes, f, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, seed.Result{Users: 2, Recipes: 3}, res)

	res, err = seed.Apply(ctx, db, recipes, f, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, seed.Result{Skipped: 3}, res)

	list, err := recipes.ListByCuisine(ctx, types.CuisineMediterranean)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Maya Chen", list[0].Author.Name)
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("recipes: [unterminated"), 0o600))

	_, err := seed.Load(path)
	assert.ErrorContains(t, err, "failed to parse seed file")
}

func TestApplyRequiresUserIdentity(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	_, err := seed.Apply(context.Background(), db, service.NewRecipeService(db, zap.NewNop()),
		&seed.Fixture{Users: []seed.User{{Name: "No Id"}}}, zap.NewNop())
	assert.Error(t, err)
}
