package category

import (
	"time"

	categoryDatamodel "github.com/frahmantamala/commerce-management/internal/core/datamodel/category"
)

type Category struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func FromDataModel(row *categoryDatamodel.Category) *Category {
	return &Category{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}

func FromDataModelSlice(rows []*categoryDatamodel.Category) []*Category {
	result := make([]*Category, len(rows))
	for i, row := range rows {
		result[i] = FromDataModel(row)
	}
	return result
}
