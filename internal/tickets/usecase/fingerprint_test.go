package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFingerprintIsDeterministic(t *testing.T) {
	a := Fingerprint("Printer broken", "The office printer", "user@example.com")
	b := Fingerprint("Printer broken", "The office printer", "user@example.com")
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)
}

func TestFingerprintChangesWithAnyInput(t *testing.T) {
	base := Fingerprint("subject", "preview", "sender@example.com")

	assert.NotEqual(t, base, Fingerprint("subject!", "preview", "sender@example.com"))
	assert.NotEqual(t, base, Fingerprint("subject", "preview!", "sender@example.com"))
	assert.NotEqual(t, base, Fingerprint("subject", "preview", "other@example.com"))
}

func TestFingerprintOrderMatters(t *testing.T) {
	assert.NotEqual(t,
		Fingerprint("a", "b", "c"),
		Fingerprint("b", "a", "c"),
	)
}
