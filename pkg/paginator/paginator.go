// Package paginator 提供与参考实现一致的分页语义：
// 页码非法取第 1 页，超出范围取最后一页，空集返回空的第 1 页。
package paginator

import "gorm.io/gorm"

// Page 一页查询结果
type Page[T any] struct {
	Items      []T   `json:"items"`
	Number     int   `json:"number"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
	TotalCount int64 `json:"total_count"`
}

func (p *Page[T]) HasNext() bool { return p.Number < p.TotalPages }
func (p *Page[T]) HasPrev() bool { return p.Number > 1 }

// Paginate 对已经带好条件和排序的查询执行 count + 截取。
// query 需要包含 Model/Table 信息以便 Count。
func Paginate[T any](query *gorm.DB, page, pageSize int) (*Page[T], error) {
	if pageSize < 1 {
		pageSize = 10
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	var items []T
	offset := (page - 1) * pageSize
	if err := query.Offset(offset).Limit(pageSize).Find(&items).Error; err != nil {
		return nil, err
	}

	return &Page[T]{
		Items:      items,
		Number:     page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		TotalCount: total,
	}, nil
}
