package model

// Credentials is one email/password login pair for the archive API.
type Credentials struct {
	Email    string
	Password string
}

// IsZero returns true when neither field is set. Used to detect an absent
// secondary login.
func (c Credentials) IsZero() bool {
	return c.Email == "" && c.Password == ""
}

// TokenPair holds the bearer tokens obtained at startup. Secondary is empty
// when no secondary credentials are configured. Tokens are held in memory for
// the duration of the run and never persisted.
type TokenPair struct {
	Primary   string
	Secondary string
}
