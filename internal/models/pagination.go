package models

// Page is a zero-indexed page request. A non-positive Size means no limit.
type Page struct {
	Number int
	Size   int
}

// Limited reports whether the page restricts the result set.
func (p Page) Limited() bool {
	return p.Size > 0
}

// Skip returns the number of documents to skip.
func (p Page) Skip() int64 {
	if !p.Limited() || p.Number <= 0 {
		return 0
	}
	return int64(p.Number) * int64(p.Size)
}
