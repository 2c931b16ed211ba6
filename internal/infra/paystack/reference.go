package paystack

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

const base36 = "abcdefghijklmnopqrstuvwxyz0123456789"

// NewReference generates a payment reference in the shape
// LTL_<unix-ms>_<suffix>. Uniqueness relies on the timestamp plus a
// random suffix, which is sufficient at this store's order volume.
func NewReference() string {
	return fmt.Sprintf("LTL_%d_%s", time.Now().UnixMilli(), randomSuffix(7))
}

// NewOrderNumber generates a customer-facing order number in the shape
// LTL-<unix-ms>-<SUFFIX>.
func NewOrderNumber() string {
	return fmt.Sprintf("LTL-%d-%s", time.Now().UnixMilli(), strings.ToUpper(randomSuffix(4)))
}

func randomSuffix(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = base36[rand.Intn(len(base36))]
	}
	return string(b)
}
