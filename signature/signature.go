package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Compute returns the hex-encoded HMAC-SHA256 digest of
// orderID + "|" + paymentID under the given secret.
func Compute(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify reports whether provided matches the expected signature for the
// order/payment pair. The comparison is constant time.
func Verify(orderID, paymentID, provided, secret string) bool {
	if orderID == "" || paymentID == "" || provided == "" {
		return false
	}
	expected := Compute(orderID, paymentID, secret)
	return hmac.Equal([]byte(provided), []byte(expected))
}
