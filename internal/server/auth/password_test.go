package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPasswordHasher_Deterministic(t *testing.T) {
	h := NewPasswordHasher("salt")

	d1 := h.Digest("hunter2")
	d2 := h.Digest("hunter2")

	assert.Equal(t, d1, d2)
	assert.Len(t, d1, argonKeyLen*2)
	assert.NotEqual(t, d1, h.Digest("hunter3"))
	assert.NotEqual(t, d1, NewPasswordHasher("other").Digest("hunter2"))
}

func TestPasswordHasher_Verify(t *testing.T) {
	h := NewPasswordHasher("salt")
	d := h.Digest("pw")

	assert.True(t, h.Verify("pw", d))
	assert.False(t, h.Verify("PW", d))
	assert.False(t, h.Verify("pw", ""))
}

func TestWipe(t *testing.T) {
	b := []byte("secret")
	wipe(b)
	assert.Equal(t, make([]byte, 6), b)
}
