package auth

import "golang.org/x/crypto/bcrypt"

// DefaultBcryptCost keeps hashing time reasonable while staying above
// the library default.
const DefaultBcryptCost = 12

// Hasher provides one-way password hashing and constant-time verification.
type Hasher struct {
	cost int
}

func NewHasher() *Hasher {
	return &Hasher{cost: DefaultBcryptCost}
}

// Hash generates a bcrypt hash of the given password.
func (h *Hasher) Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify checks whether password matches hash.
func (h *Hasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
