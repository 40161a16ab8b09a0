package validators

import (
	"net"
	"net/mail"
	"strings"
)

// lookups are swapped in tests.
var (
	lookupMX = net.LookupMX
	lookupIP = net.LookupIP
)

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func IsEmailSyntaxValid(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

func IsEmailDomainValid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]

	if mx, err := lookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}

	if ips, err := lookupIP(domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}
