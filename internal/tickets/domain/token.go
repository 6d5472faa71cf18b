package domain

import "time"

// GraphToken is a persisted provider credential. The newest active row is the
// only authoritative one; expired rows are deactivated and never reused.
type GraphToken struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Token     string    `json:"token" gorm:"type:text;not null"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null"`
	Active    bool      `json:"active" gorm:"not null;default:true;index"`
	CreatedAt time.Time `json:"created_at"`
}

// IssuedCredential is a freshly minted credential as returned by the identity
// provider, before it is persisted.
type IssuedCredential struct {
	Token     string
	ExpiresAt time.Time
}
