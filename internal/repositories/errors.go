package repositories

import "errors"

// ErrNotFound is wrapped by repository errors for absent records so
// services can map them without string matching.
var ErrNotFound = errors.New("record not found")

// ErrInsufficientStock is returned by conditional stock decrements
// when the shoe exists but does not hold the requested quantity.
var ErrInsufficientStock = errors.New("insufficient stock")
