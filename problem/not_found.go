package problem

const (
	NotFoundCode  = "not_found"
	NotFoundTitle = "Not Found"
)

// NotFound is a Problem reporting a missing resource.
type NotFound struct {
	*Problem
}

// NewNotFound constructs a NotFound.
// Its code and title default to NotFoundCode and NotFoundTitle
// unless opts set them.
func NewNotFound(message string, opts ...Opt) *NotFound {
	defaults := []Opt{WithCode(NotFoundCode), WithTitle(NotFoundTitle)}
	return &NotFound{Problem: New(message, append(defaults, opts...)...)}
}
