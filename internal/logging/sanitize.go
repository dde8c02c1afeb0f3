package logging

import "strings"

// SanitizedEmail masks an address for logs: "alice@mail.example.com" becomes
// "a****@****.*******.com".
func SanitizedEmail(email string) string {
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return "[invalid-email]"
	}

	username := parts[0]
	domain := parts[1]

	if len(username) > 1 {
		username = username[:1] + strings.Repeat("*", len(username)-1)
	}

	domainParts := strings.Split(domain, ".")
	if len(domainParts) > 1 {
		for i := 0; i < len(domainParts)-1; i++ {
			domainParts[i] = strings.Repeat("*", len(domainParts[i]))
		}
		domain = strings.Join(domainParts, ".")
	}

	return username + "@" + domain
}

// RedactToken keeps the first six characters of a credential so two log
// lines can be matched up without leaking the secret.
func RedactToken(token string) string {
	if token == "" {
		return ""
	}
	if len(token) <= 6 {
		return "[REDACTED]"
	}
	return token[:6] + "…[REDACTED]"
}
