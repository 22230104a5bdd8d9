package security

import (
	"crypto/subtle"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var ErrNoDeleteCode = errors.New("either DELETE_CODE or DELETE_CODE_HASH must be set")

// DeleteCodeVerifier checks the shared secret sent in the x-delete-code header.
// A bcrypt hash takes precedence over a plain code when both are configured.
type DeleteCodeVerifier struct {
	plain []byte
	hash  []byte
}

func NewDeleteCodeVerifier(code, hash string) (*DeleteCodeVerifier, error) {
	if hash != "" {
		if _, err := bcrypt.Cost([]byte(hash)); err != nil {
			return nil, err
		}
		return &DeleteCodeVerifier{hash: []byte(hash)}, nil
	}
	if code == "" {
		return nil, ErrNoDeleteCode
	}
	return &DeleteCodeVerifier{plain: []byte(code)}, nil
}

func (v *DeleteCodeVerifier) Verify(code string) bool {
	if code == "" {
		return false
	}
	if v.hash != nil {
		return bcrypt.CompareHashAndPassword(v.hash, []byte(code)) == nil
	}
	return subtle.ConstantTimeCompare(v.plain, []byte(code)) == 1
}

// HashDeleteCode produces a value suitable for DELETE_CODE_HASH.
func HashDeleteCode(code string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	return string(bytes), err
}
