package words

import (
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru"

	"impostor/internal/domain"
)

const (
	// AllCategoryID picks a random category, then a word from it
	AllCategoryID = "all"

	// CustomCategoryID marks a game played with a word typed by the players
	CustomCategoryID = "custom"

	AllLabel    = "All"
	CustomLabel = "Custom"

	// DefaultRecentSize is how many recent secret words are remembered
	DefaultRecentSize = 32
)

// Category is a named list of candidate secret words
type Category struct {
	ID    string   `json:"id" mapstructure:"id"`
	Name  string   `json:"name" mapstructure:"name"`
	Words []string `json:"words" mapstructure:"words"`
}

// CategoryInfo describes a category for the setup screen
type CategoryInfo struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	WordCount int    `json:"wordCount"`
}

// Option configures a Provider
type Option func(*Provider)

// WithRand sets the random source
func WithRand(rng domain.Rand) Option {
	return func(p *Provider) {
		p.rng = rng
	}
}

// WithRecentSize sets how many recent words are avoided. Zero disables it.
func WithRecentSize(n int) Option {
	return func(p *Provider) {
		p.recentSize = n
	}
}

// Provider is the word source for the engine
type Provider struct {
	categories []Category
	byID       map[string]int
	rng        domain.Rand
	recentSize int
	recent     *lru.ARCCache
}

var _ domain.WordProvider = (*Provider)(nil)

// NewProvider creates a provider over the given categories
func NewProvider(categories []Category, opts ...Option) (*Provider, error) {
	p := &Provider{
		byID:       make(map[string]int),
		rng:        domain.FastRand{},
		recentSize: DefaultRecentSize,
	}
	for _, opt := range opts {
		opt(p)
	}

	for _, c := range categories {
		if err := validate(c); err != nil {
			return nil, err
		}
		if i, ok := p.byID[c.ID]; ok {
			p.categories[i] = c
			continue
		}
		p.byID[c.ID] = len(p.categories)
		p.categories = append(p.categories, c)
	}

	if len(p.categories) == 0 {
		return nil, ErrNoCategories
	}

	if p.recentSize > 0 {
		cache, err := lru.NewARC(p.recentSize)
		if err != nil {
			return nil, fmt.Errorf("creating recent words cache: %w", err)
		}
		p.recent = cache
	}

	return p, nil
}

func validate(c Category) error {
	id := strings.TrimSpace(c.ID)
	switch {
	case id == "":
		return fmt.Errorf("%w: category without id", ErrInvalidCategory)
	case id == AllCategoryID || id == CustomCategoryID:
		return fmt.Errorf("%w: %q is reserved", ErrInvalidCategory, id)
	case len(c.Words) == 0:
		return fmt.Errorf("%w: %q has no words", ErrInvalidCategory, id)
	}
	return nil
}

// ResolveWord implements domain.WordProvider. A non-empty custom word wins
// over the category. Unknown categories fall back to all categories.
func (p *Provider) ResolveWord(categoryID, customWord string) domain.Secret {
	if customWord != "" {
		return domain.Secret{
			Word:             customWord,
			CategoryName:     CustomLabel,
			RealCategoryName: CustomLabel,
		}
	}

	if i, ok := p.byID[categoryID]; ok {
		c := p.categories[i]
		return domain.Secret{
			Word:             p.pick(c),
			CategoryName:     c.Name,
			RealCategoryName: c.Name,
		}
	}

	c := p.categories[p.rng.Intn(len(p.categories))]
	return domain.Secret{
		Word:             p.pick(c),
		CategoryName:     AllLabel,
		RealCategoryName: c.Name,
	}
}

// pick returns a random word from c, skipping recently used ones unless
// every word in c was used recently
func (p *Provider) pick(c Category) string {
	if p.recent == nil {
		return c.Words[p.rng.Intn(len(c.Words))]
	}

	fresh := make([]string, 0, len(c.Words))
	for _, w := range c.Words {
		if !p.recent.Contains(w) {
			fresh = append(fresh, w)
		}
	}
	if len(fresh) == 0 {
		fresh = c.Words
	}

	word := fresh[p.rng.Intn(len(fresh))]
	p.recent.Add(word, struct{}{})
	return word
}

// Categories lists the selectable categories, with the all and custom
// entries first
func (p *Provider) Categories() []CategoryInfo {
	total := 0
	for _, c := range p.categories {
		total += len(c.Words)
	}

	infos := make([]CategoryInfo, 0, len(p.categories)+2)
	infos = append(infos,
		CategoryInfo{ID: AllCategoryID, Name: AllLabel, WordCount: total},
		CategoryInfo{ID: CustomCategoryID, Name: CustomLabel},
	)
	for _, c := range p.categories {
		infos = append(infos, CategoryInfo{ID: c.ID, Name: c.Name, WordCount: len(c.Words)})
	}
	return infos
}

// Category returns a category by ID
func (p *Provider) Category(id string) (Category, bool) {
	i, ok := p.byID[id]
	if !ok {
		return Category{}, false
	}
	return p.categories[i], true
}
