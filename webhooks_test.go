package smartcar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashChallenge(t *testing.T) {
	amt := "abc123abc123"
	challenge := "9c9c9c9c"

	signature := HashChallenge(amt, challenge)
	assert.Len(t, signature, 64) // hex-encoded sha256
	assert.True(t, VerifyPayload(amt, signature, challenge))
}

func TestVerifyPayloadRejectsTamperedBody(t *testing.T) {
	amt := "abc123abc123"
	body := `{"eventId":"evt-1"}`

	signature := HashChallenge(amt, body)
	assert.True(t, VerifyPayload(amt, signature, body))
	assert.False(t, VerifyPayload(amt, signature, body+" "))
	assert.False(t, VerifyPayload("other-amt", signature, body))
}
