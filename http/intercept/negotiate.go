package intercept

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/xy-planning-network/safespace"
)

const (
	requestedWithHeader = "X-Requested-With"
	xhrValue            = "XMLHttpRequest"
	jsonMediaType       = "application/json"
)

// A Representation is the form a response to a presented failure takes.
type Representation string

const (
	// Document is a human-readable response, rendered from a template.
	Document Representation = "document"

	// Structured is a machine-readable response.
	Structured Representation = "structured"
)

var _ safespace.Enumerable = Document

// String stringifies the Representation.
func (rep Representation) String() string { return string(rep) }

// Valid asserts the Representation is a known one.
func (rep Representation) Valid() error {
	switch rep {
	case Document, Structured:
		return nil
	default:
		return fmt.Errorf("%w: representation %q", safespace.ErrNotValid, string(rep))
	}
}

// Negotiate chooses the Representation to respond to r with, from its headers alone.
//
// Requests made by scripts, declaring X-Requested-With: XMLHttpRequest, get Structured.
// So do requests whose Accept header mentions application/json anywhere;
// quality values and wildcards are not considered.
// Every other request gets Document.
func Negotiate(r *http.Request) Representation {
	if r == nil {
		return Document
	}

	if r.Header.Get(requestedWithHeader) == xhrValue {
		return Structured
	}

	for _, accept := range r.Header.Values("Accept") {
		if strings.Contains(accept, jsonMediaType) {
			return Structured
		}
	}

	return Document
}
