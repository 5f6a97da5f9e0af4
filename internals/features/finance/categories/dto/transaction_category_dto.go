// file: internals/features/finance/categories/dto/transaction_category_dto.go
package dto

import (
	"github.com/google/uuid"

	model "schoolku_backend/internals/features/finance/categories/model"
)

/* =========================================================
   REQUEST
========================================================= */

type CreateCategoryRequest struct {
	TransactionCategoryName string `json:"transaction_category_name" validate:"required,max=80"`
	TransactionCategoryKind string `json:"transaction_category_kind" validate:"required,oneof=income expense both"`
}

type UpdateCategoryRequest struct {
	TransactionCategoryName     *string `json:"transaction_category_name" validate:"omitempty,max=80"`
	TransactionCategoryKind     *string `json:"transaction_category_kind" validate:"omitempty,oneof=income expense both"`
	TransactionCategoryIsActive *bool   `json:"transaction_category_is_active"`
}

/* =========================================================
   RESPONSE
========================================================= */

type CategoryResponse struct {
	TransactionCategoryID       uuid.UUID                     `json:"transaction_category_id"`
	TransactionCategoryName     string                        `json:"transaction_category_name"`
	TransactionCategoryKind     model.TransactionCategoryKind `json:"transaction_category_kind"`
	TransactionCategoryIsActive bool                          `json:"transaction_category_is_active"`
}

func FromModel(m *model.TransactionCategory) CategoryResponse {
	return CategoryResponse{
		TransactionCategoryID:       m.TransactionCategoryID,
		TransactionCategoryName:     m.TransactionCategoryName,
		TransactionCategoryKind:     m.TransactionCategoryKind,
		TransactionCategoryIsActive: m.TransactionCategoryIsActive,
	}
}

func FromModels(ms []model.TransactionCategory) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(ms))
	for i := range ms {
		out = append(out, FromModel(&ms[i]))
	}
	return out
}
