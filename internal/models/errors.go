package models

import (
	"errors"
)

var (
	ErrNoRecord           = errors.New("models: no matching record found")
	ErrInvalidCredentials = errors.New("models: invalid credentials")
	ErrDuplicateEmail     = errors.New("models: duplicate email")
	ErrUserNotFound       = errors.New("models: user not found")
	ErrInvalidPassword    = errors.New("models: invalid password")
	ErrItemNotFound       = errors.New("item not found")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrLocationNotFound   = errors.New("location not found")
	ErrColorNotFound      = errors.New("color not found")
	ErrBrandNotFound      = errors.New("brand not found")
	ErrChatNotFound       = errors.New("chat not found")
	ErrMessageNotFound    = errors.New("message not found")
	ErrImageNotFound      = errors.New("image not found")
	ErrImageLimitReached  = errors.New("image limit reached for item")
	ErrInvalidItemStatus  = errors.New("invalid item status")
	ErrItemNameTooLong    = errors.New("item name too long")
	ErrItemDescTooLong    = errors.New("item description too long")
)
