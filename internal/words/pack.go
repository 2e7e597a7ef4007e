package words

import (
	"fmt"

	"github.com/spf13/viper"
)

// pack is the layout of a word pack file
type pack struct {
	Categories []Category `mapstructure:"categories"`
}

// LoadFile reads extra categories from a YAML, JSON or TOML word pack. The
// format follows the file extension.
//
//	categories:
//	  - id: movies
//	    name: Movies
//	    words: [titanic, jaws, alien]
func LoadFile(path string) ([]Category, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading word pack %s: %w", path, err)
	}

	var p pack
	if err := v.Unmarshal(&p); err != nil {
		return nil, fmt.Errorf("decoding word pack %s: %w", path, err)
	}

	for _, c := range p.Categories {
		if err := validate(c); err != nil {
			return nil, fmt.Errorf("word pack %s: %w", path, err)
		}
	}

	return p.Categories, nil
}

// Load returns the builtin categories merged with the word pack at path, if
// any. Pack categories replace builtin ones with the same ID.
func Load(path string) ([]Category, error) {
	categories := Builtin()
	if path == "" {
		return categories, nil
	}

	extra, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return append(categories, extra...), nil
}
