package services

import (
	"strings"

	"gorm.io/gorm"
)

// PageSize is the fixed number of rows per page for every list endpoint.
const PageSize = 3

// ListFilter carries the pagination and filter parameters shared by the
// project and task list endpoints.
type ListFilter struct {
	Page   int
	Status string
	Name   string
}

// PageOrFirst treats any page below 1 as the first page.
func (f ListFilter) PageOrFirst() int {
	if f.Page < 1 {
		return 1
	}
	return f.Page
}

// Scope applies the filter predicates to a query: exact match on status,
// case-insensitive substring match on name. The same scope is used for both
// the count query and the page query so the totals never drift from the rows.
func (f ListFilter) Scope(tx *gorm.DB) *gorm.DB {
	if f.Status != "" {
		tx = tx.Where("status = ?", f.Status)
	}

	if f.Name != "" {
		tx = tx.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(f.Name)+"%")
	}

	return tx
}

type PageResult struct {
	Page       int
	TotalPages int
	TotalCount int64
}

// Paginate counts the rows matching the filter and loads one page of them
// into dest. The count runs without pagination limits; both queries apply the
// identical filter scope. Preloads attached to tx take effect on the page
// query. A page past the last one yields an empty dest with correct totals.
func Paginate(tx *gorm.DB, model interface{}, dest interface{}, filter ListFilter) (PageResult, error) {
	var total int64

	if err := filter.Scope(tx.Session(&gorm.Session{}).Model(model)).Count(&total).Error; err != nil {
		return PageResult{}, NewDataAccessError(err)
	}

	page := filter.PageOrFirst()
	offset := (page - 1) * PageSize

	if err := filter.Scope(tx.Session(&gorm.Session{}).Model(model)).Offset(offset).Limit(PageSize).Find(dest).Error; err != nil {
		return PageResult{}, NewDataAccessError(err)
	}

	totalPages := int((total + PageSize - 1) / PageSize)

	return PageResult{
		Page:       page,
		TotalPages: totalPages,
		TotalCount: total,
	}, nil
}
