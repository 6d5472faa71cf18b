package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
)

// Fingerprint hashes the three fields whose change means the message was
// edited upstream. The concatenation order is fixed; the stored value is
// compared against a freshly computed one on every re-encounter.
func Fingerprint(subject, bodyPreview, senderEmail string) string {
	h := sha256.New()
	io.WriteString(h, subject)
	io.WriteString(h, bodyPreview)
	io.WriteString(h, senderEmail)
	return hex.EncodeToString(h.Sum(nil))
}
