package app

import "errors"

var (
	ErrTableNotFound = errors.New("table not found")
	ErrTooManyTables = errors.New("too many active tables")
)
