package author

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost balances hashing time against brute-force resistance.
const bcryptCost = 12

// Author is the domain entity, mapped 1:1 to the authors table.
type Author struct {
	ID       uuid.UUID `db:"id" json:"id"`
	Username string    `db:"username" json:"username"`

	PasswordHash string `db:"password_hash" json:"-"` // never exposed

	FullName    string  `db:"full_name" json:"full_name"`
	Description *string `db:"description" json:"description,omitempty"`

	// Inactive authors cannot log in, and tokens issued to them stop
	// authenticating as soon as the flag is cleared.
	Active bool `db:"active" json:"active"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// SetPassword stores a one-way salted hash of raw. The raw value is
// never persisted.
func (a *Author) SetPassword(raw string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(raw), bcryptCost)
	if err != nil {
		return err
	}
	a.PasswordHash = string(hash)
	return nil
}

// CheckPassword reports whether raw matches the stored hash. bcrypt
// performs the comparison in constant time.
func (a *Author) CheckPassword(raw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(raw)) == nil
}

// OwnedBy implements authz.Ownable: an author owns itself.
func (a *Author) OwnedBy() uuid.UUID {
	return a.ID
}
