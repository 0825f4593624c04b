package service

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// randomToken derives an opaque hex token from a seed, fresh randomness
// and the day of month. Tokens are resolved only by storage lookup.
func randomToken(seed string) string {
	sum := sha256.Sum256([]byte(seed + uuid.NewString() + strconv.Itoa(time.Now().Day())))
	return hex.EncodeToString(sum[:])
}
