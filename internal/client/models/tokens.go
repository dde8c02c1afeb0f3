// Package models defines the client-side session, identity and verification
// records shared by the stores, the API client and the session controller.
package models

import "time"

// Tokens is the persisted credential triple. JSON names follow the backend
// wire format, which is also the on-disk record format.
type Tokens struct {
	// AccessToken is the short-lived bearer credential.
	AccessToken string `json:"token"`
	// RefreshToken is presented only to the refresh endpoint.
	RefreshToken string `json:"refreshToken"`
	// AccessExpiresAt is the access token expiry in epoch milliseconds.
	AccessExpiresAt int64 `json:"tokenExpires"`
}

// ExpiresAt returns AccessExpiresAt as a time.Time.
func (t Tokens) ExpiresAt() time.Time {
	return time.UnixMilli(t.AccessExpiresAt)
}

// IsExpired reports whether the access token expiry lies strictly before now.
func (t Tokens) IsExpired(now time.Time) bool {
	return t.AccessExpiresAt != 0 && t.AccessExpiresAt < now.UnixMilli()
}

// ExpiresWithin reports whether accessExpiresAt - skew <= now, i.e. whether a
// refresh is due before the next request.
func (t Tokens) ExpiresWithin(now time.Time, skew time.Duration) bool {
	if t.AccessExpiresAt == 0 {
		return false
	}
	return t.AccessExpiresAt-skew.Milliseconds() <= now.UnixMilli()
}

// Complete reports whether all three fields are set.
func (t Tokens) Complete() bool {
	return t.AccessToken != "" && t.RefreshToken != "" && t.AccessExpiresAt != 0
}
