package words

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"impostor/internal/domain"
)

func testCategories() []Category {
	return []Category{
		{ID: "home", Name: "Home", Words: []string{"mesa", "silla", "cama"}},
		{ID: "zoo", Name: "Zoo", Words: []string{"lion", "zebra"}},
	}
}

func newTestProvider(t *testing.T, opts ...Option) *Provider {
	t.Helper()
	opts = append([]Option{WithRand(rand.New(rand.NewSource(7)))}, opts...)
	p, err := NewProvider(testCategories(), opts...)
	require.NoError(t, err)
	return p
}

func TestProvider_ConcreteCategory(t *testing.T) {
	t.Parallel()
	p := newTestProvider(t)

	for i := 0; i < 20; i++ {
		secret := p.ResolveWord("home", "")
		assert.Contains(t, []string{"mesa", "silla", "cama"}, secret.Word)
		assert.Equal(t, "Home", secret.CategoryName)
		assert.Equal(t, "Home", secret.RealCategoryName)
	}
}

func TestProvider_AllCategories(t *testing.T) {
	t.Parallel()
	p := newTestProvider(t)

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		secret := p.ResolveWord(AllCategoryID, "")
		assert.Equal(t, AllLabel, secret.CategoryName)

		c, ok := map[string]Category{"Home": testCategories()[0], "Zoo": testCategories()[1]}[secret.RealCategoryName]
		require.True(t, ok, "unexpected real category %q", secret.RealCategoryName)
		assert.Contains(t, c.Words, secret.Word)
		seen[secret.RealCategoryName] = true
	}
	assert.Len(t, seen, 2)
}

func TestProvider_UnknownCategoryFallsBackToAll(t *testing.T) {
	t.Parallel()
	p := newTestProvider(t)

	secret := p.ResolveWord("nope", "")
	assert.Equal(t, AllLabel, secret.CategoryName)
	assert.NotEmpty(t, secret.Word)
}

func TestProvider_CustomWord(t *testing.T) {
	t.Parallel()
	p := newTestProvider(t)

	secret := p.ResolveWord("home", "  Mi Palabra ")
	assert.Equal(t, domain.Secret{Word: "  Mi Palabra ", CategoryName: CustomLabel, RealCategoryName: CustomLabel}, secret)
}

func TestProvider_AvoidsRecentWords(t *testing.T) {
	t.Parallel()
	p := newTestProvider(t)

	got := map[string]bool{}
	for i := 0; i < 3; i++ {
		got[p.ResolveWord("home", "").Word] = true
	}
	assert.Len(t, got, 3, "three draws from a three word category should not repeat")
}

func TestProvider_RecentDisabled(t *testing.T) {
	t.Parallel()
	p := newTestProvider(t, WithRecentSize(0))
	assert.Nil(t, p.recent)
	assert.NotEmpty(t, p.ResolveWord("zoo", "").Word)
}

func TestProvider_Categories(t *testing.T) {
	t.Parallel()
	p := newTestProvider(t)

	assert.Equal(t, []CategoryInfo{
		{ID: AllCategoryID, Name: AllLabel, WordCount: 5},
		{ID: CustomCategoryID, Name: CustomLabel},
		{ID: "home", Name: "Home", WordCount: 3},
		{ID: "zoo", Name: "Zoo", WordCount: 2},
	}, p.Categories())

	c, ok := p.Category("zoo")
	require.True(t, ok)
	assert.Equal(t, "Zoo", c.Name)
}

func TestNewProvider_Validation(t *testing.T) {
	t.Parallel()

	_, err := NewProvider(nil)
	assert.ErrorIs(t, err, ErrNoCategories)

	for _, c := range []Category{
		{ID: "", Name: "Blank", Words: []string{"a"}},
		{ID: AllCategoryID, Name: "All", Words: []string{"a"}},
		{ID: "empty", Name: "Empty"},
	} {
		_, err := NewProvider([]Category{c})
		assert.ErrorIs(t, err, ErrInvalidCategory, c.ID)
	}
}

func TestNewProvider_LaterCategoryReplacesEarlier(t *testing.T) {
	t.Parallel()

	p, err := NewProvider([]Category{
		{ID: "home", Name: "Home", Words: []string{"mesa"}},
		{ID: "home", Name: "House", Words: []string{"sofa"}},
	})
	require.NoError(t, err)

	secret := p.ResolveWord("home", "")
	assert.Equal(t, "sofa", secret.Word)
	assert.Equal(t, "House", secret.CategoryName)
}

func TestBuiltin(t *testing.T) {
	t.Parallel()

	p, err := NewProvider(Builtin())
	require.NoError(t, err)
	assert.Len(t, p.Categories(), len(Builtin())+2)
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "pack.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
categories:
  - id: movies
    name: Movies
    words: [titanic, jaws, alien]
  - id: tech
    name: Gadgets
    words: [phone]
`), 0o600))

	categories, err := Load(path)
	require.NoError(t, err)

	p, err := NewProvider(categories)
	require.NoError(t, err)

	movies, ok := p.Category("movies")
	require.True(t, ok)
	assert.Equal(t, []string{"titanic", "jaws", "alien"}, movies.Words)

	tech, ok := p.Category("tech")
	require.True(t, ok)
	assert.Equal(t, "Gadgets", tech.Name)
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"categories":[{"id":"custom","name":"x","words":["a"]}]}`), 0o600))
	_, err = Load(path)
	assert.ErrorIs(t, err, ErrInvalidCategory)

	categories, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Builtin(), categories)
}
