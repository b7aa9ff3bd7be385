package smartcar

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// HashChallenge answers a webhook verification challenge using the
// Application Management Token from the dashboard.
func HashChallenge(amt, challenge string) string {
	mac := hmac.New(sha256.New, []byte(challenge))
	mac.Write([]byte(amt))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyPayload reports whether a webhook payload's signature checks out
// against the Application Management Token.
func VerifyPayload(amt, signature, body string) bool {
	expected := HashChallenge(amt, body)
	return hmac.Equal([]byte(expected), []byte(signature))
}
