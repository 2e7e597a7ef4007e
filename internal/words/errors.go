package words

import "errors"

var (
	ErrNoCategories    = errors.New("no word categories")
	ErrInvalidCategory = errors.New("invalid word category")
)
