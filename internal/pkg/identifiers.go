package pkg

import (
	"crypto/rand"
	"crypto/sha1" //nolint: gosec // mandated by the WebSocket handshake
	"encoding/base64"
	"encoding/hex"
	"fmt"
)

// websocketGUID is the fixed key suffix from RFC 6455.
const websocketGUID = "258EAFA5-E914-47DA-95CA-C5AB0DC85B11"

// GenerateGameID returns a short random identifier for a new game.
func GenerateGameID() (string, error) {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate game id: %w", err)
	}

	return hex.EncodeToString(buf), nil
}

// GenerateNewSessionID returns a random session identifier.
func GenerateNewSessionID() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		panic(fmt.Errorf("failed to generate session id: %w", err))
	}

	return hex.EncodeToString(buf)
}

// GenerateAcceptKey derives the Sec-WebSocket-Accept value from the
// client's Sec-WebSocket-Key.
func GenerateAcceptKey(key string) string {
	hash := sha1.Sum([]byte(key + websocketGUID)) //nolint: gosec // mandated by the WebSocket handshake
	return base64.StdEncoding.EncodeToString(hash[:])
}
