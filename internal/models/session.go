package models

// Tenant is a restaurant context selectable after sign-in.
type Tenant struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Session is the whole authentication state: a flag, the tenant list and the
// placeholder token. There is no expiry and no refresh.
type Session struct {
	IsAuthenticated bool     `json:"isAuthenticated"`
	Tenants         []Tenant `json:"tenants"`
	CurrentTenantID string   `json:"currentTenantId,omitempty"`
	Token           string   `json:"token,omitempty"`
}

// Clone returns a copy of the session with its own tenant slice.
func (s Session) Clone() Session {
	dup := s
	dup.Tenants = append([]Tenant(nil), s.Tenants...)
	return dup
}
