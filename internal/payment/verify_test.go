package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerifierSignature(t *testing.T) {
	v := NewVerifier("merchant-secret")

	t.Run("Deterministic", func(t *testing.T) {
		a := v.Signature("order_abc", "pay_xyz")
		b := v.Signature("order_abc", "pay_xyz")
		assert.Equal(t, a, b)
		assert.Len(t, a, 64) // hex-encoded SHA-256
	})

	t.Run("Matches manual HMAC", func(t *testing.T) {
		mac := hmac.New(sha256.New, []byte("merchant-secret"))
		mac.Write([]byte("order_abc|pay_xyz"))
		expected := hex.EncodeToString(mac.Sum(nil))

		assert.Equal(t, expected, v.Signature("order_abc", "pay_xyz"))
	})
}

func TestVerifierVerify(t *testing.T) {
	v := NewVerifier("merchant-secret")
	good := v.Signature("order_abc", "pay_xyz")

	t.Run("Valid signature", func(t *testing.T) {
		assert.True(t, v.Verify("order_abc", "pay_xyz", good))
	})

	t.Run("Tampered payment id", func(t *testing.T) {
		assert.False(t, v.Verify("order_abc", "pay_other", good))
	})

	t.Run("Tampered order id", func(t *testing.T) {
		assert.False(t, v.Verify("order_def", "pay_xyz", good))
	})

	t.Run("Tampered signature", func(t *testing.T) {
		tampered := "0" + good[1:]
		if tampered == good {
			tampered = "1" + good[1:]
		}
		assert.False(t, v.Verify("order_abc", "pay_xyz", tampered))
	})

	t.Run("Different secret", func(t *testing.T) {
		other := NewVerifier("another-secret")
		assert.False(t, other.Verify("order_abc", "pay_xyz", good))
	})
}

func TestVerifyBody(t *testing.T) {
	v := NewVerifier("webhook-secret")
	body := []byte(`{"event":"payment.captured"}`)

	mac := hmac.New(sha256.New, []byte("webhook-secret"))
	mac.Write(body)
	sig := hex.EncodeToString(mac.Sum(nil))

	assert.True(t, v.VerifyBody(body, sig))
	assert.False(t, v.VerifyBody([]byte(`{"event":"payment.failed"}`), sig))
	assert.False(t, v.VerifyBody(body, "deadbeef"))
}
