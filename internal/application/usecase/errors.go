package usecase

import "errors"

var (
	// ErrNoSurface is returned when an operation needs the rendering
	// surface and none is attached.
	ErrNoSurface = errors.New("no rendering surface attached")
	// ErrCannotGoBack is returned when the surface has no back entry.
	ErrCannotGoBack = errors.New("no previous page in history")
)
