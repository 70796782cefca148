package backend

import "strings"

// Credentials carries the bearer token for a single call. The zero value is
// anonymous.
type Credentials struct {
	AccessToken string
}

// Bearer builds credentials from a raw access token.
func Bearer(token string) Credentials {
	return Credentials{AccessToken: strings.TrimSpace(token)}
}

// Anonymous returns credentials that send no Authorization header.
func Anonymous() Credentials {
	return Credentials{}
}

// Authorized reports whether the credentials carry a token.
func (c Credentials) Authorized() bool {
	return strings.TrimSpace(c.AccessToken) != ""
}

func (c Credentials) header() string {
	if !c.Authorized() {
		return ""
	}
	return "Bearer " + strings.TrimSpace(c.AccessToken)
}
