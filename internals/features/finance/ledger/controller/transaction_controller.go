// file: internals/features/finance/ledger/controller/transaction_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	auditSvc "schoolku_backend/internals/features/finance/audit/service"
	"schoolku_backend/internals/features/finance/ledger/dto"
	"schoolku_backend/internals/features/finance/ledger/model"
	"schoolku_backend/internals/features/finance/ledger/service"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

// =======================================================
// BOOTSTRAP
// =======================================================

type TransactionHandler struct {
	DB       *gorm.DB
	Audit    *auditSvc.Recorder
	Renderer service.ReceiptRenderer
}

func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	return uuid.Parse(c.Params(name))
}

// =======================================================
// CREATE
// =======================================================

// POST /incomes
func (h *TransactionHandler) CreateIncome(c *fiber.Ctx) error {
	actor, err := helperAuth.GetIdentityFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	var req dto.CreateIncomeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := helper.Validate(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	date, err := dto.ParseDateYMD(req.TransactionDate)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format tanggal tidak valid")
	}
	method := model.PaymentMethod(req.TransactionPaymentMethod)

	trx, err := service.CreateTransaction(c.UserContext(), h.DB, service.CreateTransactionInput{
		SchoolID:      actor.SchoolID,
		Type:          model.TransactionTypeIncome,
		Date:          date,
		CategoryID:    req.TransactionCategoryID,
		Description:   req.TransactionDescription,
		AmountIDR:     req.TransactionAmountIDR,
		PaymentMethod: &method,
		StudentID:     req.TransactionStudentID,
		TermID:        req.TransactionTermID,
		ActorUserID:   actor.UserID,
		ActorUserName: actor.UserName,
	})
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	h.Audit.Record(actor, "income.create", "transaction", &trx.TransactionID,
		trx.TransactionDescription, nil, dto.FromModel(trx))

	return helper.JsonCreated(c, "Pemasukan tercatat", dto.FromModel(trx))
}

// POST /expenses
func (h *TransactionHandler) CreateExpense(c *fiber.Ctx) error {
	actor, err := helperAuth.GetIdentityFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	var req dto.CreateExpenseRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := helper.Validate(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	date, err := dto.ParseDateYMD(req.TransactionDate)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format tanggal tidak valid")
	}

	trx, err := service.CreateTransaction(c.UserContext(), h.DB, service.CreateTransactionInput{
		SchoolID:      actor.SchoolID,
		Type:          model.TransactionTypeExpense,
		Date:          date,
		CategoryID:    req.TransactionCategoryID,
		Description:   req.TransactionDescription,
		AmountIDR:     req.TransactionAmountIDR,
		ActorUserID:   actor.UserID,
		ActorUserName: actor.UserName,
	})
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	h.Audit.Record(actor, "expense.create", "transaction", &trx.TransactionID,
		trx.TransactionDescription, nil, dto.FromModel(trx))

	return helper.JsonCreated(c, "Pengeluaran tercatat", dto.FromModel(trx))
}

// =======================================================
// AMEND / VOID
// =======================================================

// PATCH /transactions/:id
func (h *TransactionHandler) Amend(c *fiber.Ctx) error {
	actor, err := helperAuth.GetIdentityFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID transaksi tidak valid")
	}

	var req dto.AmendTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := helper.Validate(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	before, err := service.GetTransaction(c.UserContext(), h.DB, actor.SchoolID, id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	beforeSnap := dto.FromModel(before)

	in := service.AmendTransactionInput{
		CategoryID:  req.TransactionCategoryID,
		Description: req.TransactionDescription,
		AmountIDR:   req.TransactionAmountIDR,
	}
	if req.TransactionDate != nil {
		d, err := dto.ParseDateYMD(*req.TransactionDate)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Format tanggal tidak valid")
		}
		in.Date = &d
	}
	if req.TransactionPaymentMethod != nil {
		m := model.PaymentMethod(*req.TransactionPaymentMethod)
		in.PaymentMethod = &m
	}

	trx, err := service.AmendTransaction(c.UserContext(), h.DB, actor.SchoolID, id, in)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	h.Audit.Record(actor, "transaction.amend", "transaction", &trx.TransactionID,
		trx.TransactionDescription, beforeSnap, dto.FromModel(trx))

	return helper.JsonUpdated(c, "Transaksi diperbarui", dto.FromModel(trx))
}

// POST /transactions/:id/void
func (h *TransactionHandler) Void(c *fiber.Ctx) error {
	actor, err := helperAuth.GetIdentityFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID transaksi tidak valid")
	}

	var req dto.VoidTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := helper.Validate(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	trx, err := service.VoidTransaction(c.UserContext(), h.DB, actor.SchoolID, id,
		req.TransactionVoidReason, actor.UserID, actor.UserName)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	h.Audit.Record(actor, "transaction.void", "transaction", &trx.TransactionID,
		req.TransactionVoidReason, nil, dto.FromModel(trx))

	return helper.JsonOK(c, "Transaksi dibatalkan", dto.FromModel(trx))
}

// =======================================================
// READ
// =======================================================

// GET /transactions
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	actor, err := helperAuth.GetIdentityFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	paging := helper.ResolvePaging(c, 20, 100)
	f := service.ListTransactionsFilter{Offset: paging.Offset, Limit: paging.Limit}

	if t := c.Query("type"); t != "" {
		tt := model.TransactionType(t)
		f.Type = &tt
	}
	if cid := c.Query("category_id"); cid != "" {
		id, err := uuid.Parse(cid)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "category_id tidak valid")
		}
		f.CategoryID = &id
	}
	if sid := c.Query("student_id"); sid != "" {
		id, err := uuid.Parse(sid)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "student_id tidak valid")
		}
		f.StudentID = &id
	}
	if v := c.Query("voided"); v != "" {
		b := v == "true" || v == "1"
		f.Voided = &b
	}

	rows, total, err := service.ListTransactions(c.UserContext(), h.DB, actor.SchoolID, f)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	return helper.JsonList(c, "OK", dto.FromModels(rows),
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// GET /transactions/:id
func (h *TransactionHandler) Detail(c *fiber.Ctx) error {
	actor, err := helperAuth.GetIdentityFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID transaksi tidak valid")
	}

	trx, err := service.GetTransaction(c.UserContext(), h.DB, actor.SchoolID, id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "OK", dto.FromModel(trx))
}

// GET /incomes/:id/receipt — render kwitansi (teks)
func (h *TransactionHandler) RenderReceipt(c *fiber.Ctx) error {
	actor, err := helperAuth.GetIdentityFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID transaksi tidak valid")
	}

	trx, err := service.GetTransaction(c.UserContext(), h.DB, actor.SchoolID, id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	doc, err := h.Renderer.Render(trx)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.SendString(doc)
}
