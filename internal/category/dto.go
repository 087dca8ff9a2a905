package category

import (
	errors "github.com/frahmantamala/commerce-management/internal"
	"github.com/frahmantamala/commerce-management/internal/core/common/validation"
)

type CreateCategoryDTO struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (d CreateCategoryDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MaxLength(255)
	v.Field("description", d.Description).MaxLength(1000)
	return v.Validate()
}

type UpdateCategoryDTO struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (d UpdateCategoryDTO) IsEmpty() bool {
	return d.Name == nil && d.Description == nil
}

func (d UpdateCategoryDTO) Validate() *errors.AppError {
	if d.IsEmpty() {
		return errors.ErrNothingToUpdate
	}

	v := validation.NewValidator()
	if d.Name != nil {
		v.Field("name", *d.Name).Required().MaxLength(255)
	}
	if d.Description != nil {
		v.Field("description", *d.Description).MaxLength(1000)
	}
	return v.Validate()
}

func (d UpdateCategoryDTO) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if d.Name != nil {
		fields["name"] = *d.Name
	}
	if d.Description != nil {
		fields["description"] = *d.Description
	}
	return fields
}

type ListCategoriesQuery struct {
	Page  int
	Limit int
}

func (q *ListCategoriesQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 || q.Limit > 100 {
		q.Limit = 20
	}
}

func (q ListCategoriesQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}
