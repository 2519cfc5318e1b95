package dto

// dateLayout is the wire format for calendar dates.
const dateLayout = "2006-01-02"

// PageRequest carries pagination query parameters.
// Page is 1-based; the store offset is (page-1)*page_size.
type PageRequest struct {
	Page     int `form:"page"      binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=200"`
}

// GetPage returns the page, defaulting to 1.
func (p *PageRequest) GetPage() int {
	if p.Page < 1 {
		return 1
	}
	return p.Page
}

// GetPageSize returns the page size, defaulting to 20.
func (p *PageRequest) GetPageSize() int {
	if p.PageSize < 1 {
		return 20
	}
	return p.PageSize
}

// GetOffset returns the zero-based store offset.
func (p *PageRequest) GetOffset() int {
	return (p.GetPage() - 1) * p.GetPageSize()
}
