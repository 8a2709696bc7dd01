package auth

import (
	"net/mail"
	"sort"
	"strings"
)

// ValidationError lists the request fields that failed validation.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	e.Fields[field] = message
}

func validateRegisterRequest(req RegisterRequest) error {
	verr := &ValidationError{}

	email := strings.TrimSpace(req.Email)
	if email == "" {
		verr.add("email", "email is required")
	} else if !isValidEmail(email) {
		verr.add("email", "invalid email format")
	}

	if req.Password == "" {
		verr.add("password", "password is required")
	}

	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

// isValidEmail accepts a bare address only, not "Name <addr>".
func isValidEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
