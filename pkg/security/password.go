package security

import (
	"crypto/rand"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

// TempPasswordLength is the length of generated temporary passwords.
const TempPasswordLength = 12

// TempPasswordAlphabet is the character set temporary passwords are drawn from.
const TempPasswordAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*-_"

// dummyHash is precomputed so authentication misses spend the same
// verification cost as a real password check.
var dummyHash string

func init() {
	h, err := HashPassword("dummy")
	if err != nil {
		panic("failed to precompute dummy hash: " + err.Error())
	}
	dummyHash = h
}

// HashPassword hashes a plaintext password with bcrypt
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifyPassword reports whether the password matches the stored hash
func VerifyPassword(password, hashedPassword string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}

// VerifyDummy performs an equivalent-cost verification against the
// precomputed hash. Called on any authentication miss so the response
// time for "unknown email" matches "wrong password".
func VerifyDummy(password string) {
	_ = VerifyPassword(password, dummyHash)
}

// GenerateTempPassword returns a cryptographically random temporary
// password of TempPasswordLength characters.
func GenerateTempPassword() (string, error) {
	max := big.NewInt(int64(len(TempPasswordAlphabet)))
	buf := make([]byte, TempPasswordLength)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = TempPasswordAlphabet[n.Int64()]
	}
	return string(buf), nil
}
