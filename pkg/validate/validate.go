// Package validate holds small input validators shared by the domain
// services and the CLI.
package validate

import "strings"

// Phone accepts a phone number with common separators: after stripping
// them it must be 10 to 15 digits.
func Phone(phone string) bool {
	cleaned := strings.NewReplacer("-", "", " ", "", "(", "", ")", "", "+", "").Replace(phone)
	if len(cleaned) < 10 || len(cleaned) > 15 {
		return false
	}
	for _, r := range cleaned {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Email is a shallow shape check: one @ with a dotted domain.
func Email(email string) bool {
	at := strings.Index(email, "@")
	if at <= 0 || len(email) <= 5 {
		return false
	}
	domain := email[at+1:]
	return strings.Contains(domain, ".") && !strings.Contains(domain, "@")
}
