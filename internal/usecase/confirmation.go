package usecase

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"

	"reviewhub/internal/data/entity"
)

// CodeIssuer derives single-use confirmation codes from user state instead
// of storing them. The code is an HMAC over the user id and the per-user
// code salt; rotating the salt invalidates every code issued before it.
type CodeIssuer struct {
	secret []byte
}

func NewCodeIssuer(secret string) *CodeIssuer {
	return &CodeIssuer{secret: []byte(secret)}
}

// Make derives the confirmation code currently valid for the user.
func (c *CodeIssuer) Make(user *entity.User) string {
	mac := hmac.New(sha256.New, c.secret)
	mac.Write([]byte(user.ID.String()))
	mac.Write([]byte{0})
	mac.Write([]byte(user.CodeSalt))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify checks a submitted code against the user's current state in
// constant time.
func (c *CodeIssuer) Verify(user *entity.User, code string) bool {
	expected := c.Make(user)
	return hmac.Equal([]byte(expected), []byte(code))
}

// NewCodeSalt returns a fresh random salt for a user.
func NewCodeSalt() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return hex.EncodeToString(buf)
}
