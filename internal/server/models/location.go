package models

import "strings"

// Location is a playable place. ImageRef is empty until the first
// successful image fetch.
type Location struct {
	ID       int64
	Name     string
	Lat      float64
	Lng      float64
	ImageRef string
}

// NeedsImage reports whether the location has no usable cached image:
// either nothing was stored yet or the row still points at the provider.
func (l *Location) NeedsImage() bool {
	return l.ImageRef == "" || strings.HasPrefix(l.ImageRef, "http")
}
