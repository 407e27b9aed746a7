package models

const (
	DefaultPage         = 1
	DefaultItemsPerPage = 25
)

// PageRequest is a 1-based page window. Pages are always served in ascending
// primary key order so repeated reads over a static dataset are reproducible.
type PageRequest struct {
	Page         int
	ItemsPerPage int
}

func NewPageRequest(page, itemsPerPage int) PageRequest {
	if page < 1 {
		page = DefaultPage
	}
	if itemsPerPage < 1 {
		itemsPerPage = DefaultItemsPerPage
	}
	return PageRequest{Page: page, ItemsPerPage: itemsPerPage}
}

func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.ItemsPerPage
}

// Page is one result window plus the total count computed with the same
// predicate, so the sum of all windows always equals Total.
type Page struct {
	Items []Record
	Page  int
	Total int
}
