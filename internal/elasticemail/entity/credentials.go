package entity

// Credentials authenticate every call to the provider.
type Credentials struct {
	Username string
	APIKey   string
}

// Valid reports whether both fields are set.
func (c Credentials) Valid() bool {
	return c.Username != "" && c.APIKey != ""
}
