package catalog

import (
	"strings"

	"github.com/abhisek/orbitrest/internal/apperr"
)

// Method is an HTTP method taught by a concept.
type Method string

const (
	MethodGet    Method = "GET"
	MethodPost   Method = "POST"
	MethodPut    Method = "PUT"
	MethodPatch  Method = "PATCH"
	MethodDelete Method = "DELETE"
)

// Methods returns every method in lesson order.
func Methods() []Method {
	return []Method{MethodGet, MethodPost, MethodPut, MethodPatch, MethodDelete}
}

// ParseMethod parses s case-insensitively.
func ParseMethod(s string) (Method, error) {
	m := Method(strings.ToUpper(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", apperr.Invalid("unknown method %q", s)
	}
	return m, nil
}

// Valid reports whether m is one of the five supported methods.
func (m Method) Valid() bool {
	switch m {
	case MethodGet, MethodPost, MethodPut, MethodPatch, MethodDelete:
		return true
	}
	return false
}

func (m Method) String() string { return string(m) }
