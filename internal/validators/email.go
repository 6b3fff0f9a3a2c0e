package validators

import "strings"

// IsEmailValid does a syntactic check only; nothing here verifies the
// mailbox exists.
func IsEmailValid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]
	dot := strings.LastIndex(domain, ".")
	if dot <= 0 || dot == len(domain)-1 {
		return false
	}

	return !strings.ContainsAny(email, " \t")
}

// RoleForEmail derives the portal role from the address. This mirrors the
// demo login contract: any credentials are accepted and the role comes from
// a substring match.
func RoleForEmail(email string) string {
	lower := strings.ToLower(email)
	switch {
	case strings.Contains(lower, "admin"):
		return "admin"
	case strings.Contains(lower, "worker"):
		return "worker"
	default:
		return "customer"
	}
}
