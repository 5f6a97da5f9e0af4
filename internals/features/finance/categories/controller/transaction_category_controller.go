// file: internals/features/finance/categories/controller/transaction_category_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/finance/categories/dto"
	"schoolku_backend/internals/features/finance/categories/model"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

type TransactionCategoryHandler struct {
	DB *gorm.DB
}

// =======================================================
// CREATE
// =======================================================

// POST /transaction-categories
func (h *TransactionCategoryHandler) Create(c *fiber.Ctx) error {
	actor, err := helperAuth.GetIdentityFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	var req dto.CreateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := helper.Validate(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	cat := model.TransactionCategory{
		TransactionCategorySchoolID: actor.SchoolID,
		TransactionCategoryName:     strings.TrimSpace(req.TransactionCategoryName),
		TransactionCategoryKind:     model.TransactionCategoryKind(req.TransactionCategoryKind),
		TransactionCategoryIsActive: true,
	}
	if cat.TransactionCategoryName == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Nama kategori wajib diisi")
	}

	if err := h.DB.WithContext(c.UserContext()).Create(&cat).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Nama kategori sudah dipakai")
		}
		return helper.JsonFromError(c, err)
	}

	return helper.JsonCreated(c, "Kategori dibuat", dto.FromModel(&cat))
}

// =======================================================
// UPDATE
// =======================================================

// PATCH /transaction-categories/:id
func (h *TransactionCategoryHandler) Update(c *fiber.Ctx) error {
	actor, err := helperAuth.GetIdentityFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID kategori tidak valid")
	}

	var req dto.UpdateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := helper.Validate(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var cat model.TransactionCategory
	if err := h.DB.WithContext(c.UserContext()).
		Where("transaction_category_id = ? AND transaction_category_school_id = ?", id, actor.SchoolID).
		First(&cat).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Kategori tidak ditemukan")
		}
		return helper.JsonFromError(c, err)
	}

	if req.TransactionCategoryName != nil {
		name := strings.TrimSpace(*req.TransactionCategoryName)
		if name == "" {
			return helper.JsonError(c, fiber.StatusBadRequest, "Nama kategori wajib diisi")
		}
		cat.TransactionCategoryName = name
	}
	if req.TransactionCategoryKind != nil {
		cat.TransactionCategoryKind = model.TransactionCategoryKind(*req.TransactionCategoryKind)
	}
	if req.TransactionCategoryIsActive != nil {
		cat.TransactionCategoryIsActive = *req.TransactionCategoryIsActive
	}

	if err := h.DB.WithContext(c.UserContext()).Save(&cat).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Nama kategori sudah dipakai")
		}
		return helper.JsonFromError(c, err)
	}

	return helper.JsonUpdated(c, "Kategori diperbarui", dto.FromModel(&cat))
}

// =======================================================
// DELETE (soft)
// =======================================================

// DELETE /transaction-categories/:id
func (h *TransactionCategoryHandler) Delete(c *fiber.Ctx) error {
	actor, err := helperAuth.GetIdentityFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID kategori tidak valid")
	}

	res := h.DB.WithContext(c.UserContext()).
		Where("transaction_category_id = ? AND transaction_category_school_id = ?", id, actor.SchoolID).
		Delete(&model.TransactionCategory{})
	if res.Error != nil {
		return helper.JsonFromError(c, res.Error)
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Kategori tidak ditemukan")
	}

	return helper.JsonOK(c, "Kategori dihapus", fiber.Map{"transaction_category_id": id})
}

// =======================================================
// READ
// =======================================================

// GET /transaction-categories
func (h *TransactionCategoryHandler) List(c *fiber.Ctx) error {
	actor, err := helperAuth.GetIdentityFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	q := h.DB.WithContext(c.UserContext()).
		Where("transaction_category_school_id = ?", actor.SchoolID)

	if kind := c.Query("kind"); kind != "" {
		q = q.Where("transaction_category_kind = ?", kind)
	}
	if act := c.Query("active"); act != "" {
		q = q.Where("transaction_category_is_active = ?", act == "true" || act == "1")
	}

	var rows []model.TransactionCategory
	if err := q.Order("transaction_category_name ASC").Find(&rows).Error; err != nil {
		return helper.JsonFromError(c, err)
	}

	return helper.JsonOK(c, "OK", dto.FromModels(rows))
}
