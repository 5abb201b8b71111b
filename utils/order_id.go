package utils

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

const alnumChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var (
	oidMu      sync.Mutex
	seededRand = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// GenerateMerchantOid mints a fresh order identifier of the form
// {prefix}-{unix seconds}-{8 random alphanumerics}. It is the sole
// de-duplication key for the payment flow, so the suffix is wide enough
// that a collision between two calls in the same second is negligible.
func GenerateMerchantOid(prefix string) string {
	oidMu.Lock()
	defer oidMu.Unlock()

	suffix := make([]byte, 8)
	for i := range suffix {
		suffix[i] = alnumChars[seededRand.Intn(len(alnumChars))]
	}

	return fmt.Sprintf("%s-%d-%s", prefix, time.Now().Unix(), string(suffix))
}
