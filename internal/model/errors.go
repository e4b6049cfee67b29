package model

import "errors"

var (
	ErrEmptyName       = errors.New("list name is empty")
	ErrEmptyTitle      = errors.New("item title is empty")
	ErrInvalidDate     = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidState    = errors.New("invalid state")
	ErrInvalidPriority = errors.New("invalid priority")
	ErrItemNotFound    = errors.New("item not found")
)
