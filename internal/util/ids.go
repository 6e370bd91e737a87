package util

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	idLength   = 14
)

// NewPublicID generates a URL-safe public identifier for contacts and
// analysis runs. IDs are lowercase alphanumeric so they survive
// case-insensitive clients.
func NewPublicID() (string, error) {
	return gonanoid.Generate(idAlphabet, idLength)
}

// NewCorrelationID generates an identifier used to tie a queued
// analysis job to its progress and results.
func NewCorrelationID() (string, error) {
	return gonanoid.New()
}
