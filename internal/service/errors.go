package service

import "errors"

var (
	// ErrCatalogEmpty is returned when no playable games are loaded
	ErrCatalogEmpty = errors.New("catalog has no playable games")
	// ErrShareNotFound is returned for an unknown share id
	ErrShareNotFound = errors.New("shared run not found")
	// ErrInvalidLifeline is returned for a lifeline name outside the known set
	ErrInvalidLifeline = errors.New("unknown lifeline")
	// ErrUnknownShopItem is returned for an item id the shop does not stock
	ErrUnknownShopItem = errors.New("unknown shop item")
	// ErrEmailDisabled is returned when a share email is requested but SES is not configured
	ErrEmailDisabled = errors.New("email sharing is not configured")
)
