package domain

// Page carries page/limit values for catalog browsing.
// Number is 1-indexed. Size is capped at MaxPageSize.
type Page struct {
	Number int
	Size   int
}

const (
	DefaultPageSize = 12
	MaxPageSize     = 48
)

// NewPage builds a Page from optional query params.
// Nil or non-positive values fall back to page 1 and DefaultPageSize.
func NewPage(number, size *int) Page {
	p := Page{Number: 1, Size: DefaultPageSize}
	if number != nil && *number >= 1 {
		p.Number = *number
	}
	if size != nil && *size >= 1 {
		p.Size = min(*size, MaxPageSize)
	}
	return p
}

// Offset returns the zero-based row offset for a SQL OFFSET clause.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}
