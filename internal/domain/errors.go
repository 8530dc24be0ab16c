package domain

import "errors"

var (
	ErrInvalidCard     = errors.New("invalid card")
	ErrInvalidPile     = errors.New("invalid pile")
	ErrInvalidLayout   = errors.New("invalid tableau layout")
	ErrUnknownVariant  = errors.New("unknown variant")
	ErrCorruptState    = errors.New("game state invariant violated")
	ErrGameNotFound    = errors.New("game not found")
	ErrVersionConflict = errors.New("game version conflict")
	ErrArtNotFound     = errors.New("card art not found")
	ErrNoEntropy       = errors.New("random source unavailable")
)
