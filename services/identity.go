package services

import (
	"crypto/rand"

	"github.com/google/uuid"
)

const (
	gameIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	gameIDLength   = 6
)

// NewGameID returns a short URL-safe game identifier, 6 characters over
// [A-Za-z0-9].
func NewGameID() string {
	buf := make([]byte, gameIDLength)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms
		panic(err)
	}
	for i, b := range buf {
		buf[i] = gameIDAlphabet[int(b)%len(gameIDAlphabet)]
	}
	return string(buf)
}

// NewClientID returns the identifier for a freshly accepted connection.
func NewClientID() string {
	return uuid.New().String()
}
