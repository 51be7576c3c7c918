package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/taller-api/internal/application/accounting"
	"github.com/jhoicas/taller-api/internal/application/dto"
)

// AccountingHandler cobros, pagos a proveedor, gastos y cuentas por cobrar/pagar.
type AccountingHandler struct {
	payments *accounting.PaymentUseCase
	expenses *accounting.ExpenseUseCase
	ledger   *accounting.LedgerUseCase
}

// NewAccountingHandler construye el handler.
func NewAccountingHandler(payments *accounting.PaymentUseCase, expenses *accounting.ExpenseUseCase, ledger *accounting.LedgerUseCase) *AccountingHandler {
	return &AccountingHandler{payments: payments, expenses: expenses, ledger: ledger}
}

// ── Cobros ────────────────────────────────────────────────────────────────────

// ListPayments GET /api/payments
func (h *AccountingHandler) ListPayments(c *fiber.Ctx) error {
	var in dto.PaymentListRequest
	if err := parseQuery(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.payments.List(c.Context(), actorFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreatePayment godoc
// @Summary      Registrar cobro
// @Description  Con status completed (por defecto) el monto se aplica a la factura.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreatePaymentRequest  true  "cobro"
// @Success      201   {object}  dto.ProcessPaymentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "factura cancelada"
// @Router       /api/payments [post]
func (h *AccountingHandler) CreatePayment(c *fiber.Ctx) error {
	var in dto.CreatePaymentRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.payments.ProcessPayment(c.Context(), actorFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetPayment GET /api/payments/:id
func (h *AccountingHandler) GetPayment(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.payments.GetByID(c.Context(), actorFrom(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdatePayment godoc
// @Summary      Editar cobro
// @Description  Pasar a completed aplica el monto a la factura. Un cobro completed no cambia monto, método ni estado.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                    true  "ID del cobro"
// @Param        body  body  dto.UpdatePaymentRequest  true  "campos a editar"
// @Success      200   {object}  dto.ProcessPaymentResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/payments/{id} [put]
func (h *AccountingHandler) UpdatePayment(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.UpdatePaymentRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.payments.Update(c.Context(), actorFrom(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ── Pagos a proveedor ─────────────────────────────────────────────────────────

// ListSupplierPayments GET /api/supplier-payments
func (h *AccountingHandler) ListSupplierPayments(c *fiber.Ctx) error {
	var in dto.SupplierPaymentListRequest
	if err := parseQuery(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.payments.ListSupplierPayments(c.Context(), actorFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateSupplierPayment godoc
// @Summary      Registrar pago a proveedor
// @Description  Asigna SPAYyyyymmNNNN. Si referencia una orden de compra y está completed descuenta la cuenta por pagar.
// @Tags         supplier-payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateSupplierPaymentRequest  true  "pago"
// @Success      201   {object}  dto.SupplierPaymentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/supplier-payments [post]
func (h *AccountingHandler) CreateSupplierPayment(c *fiber.Ctx) error {
	var in dto.CreateSupplierPaymentRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.payments.CreateSupplierPayment(c.Context(), actorFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ── Gastos ────────────────────────────────────────────────────────────────────

// ListExpenses GET /api/expenses
func (h *AccountingHandler) ListExpenses(c *fiber.Ctx) error {
	var in dto.ExpenseListRequest
	if err := parseQuery(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.expenses.List(c.Context(), actorFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateExpense POST /api/expenses
func (h *AccountingHandler) CreateExpense(c *fiber.Ctx) error {
	var in dto.CreateExpenseRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.expenses.Create(c.Context(), actorFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetExpense GET /api/expenses/:id
func (h *AccountingHandler) GetExpense(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.expenses.GetByID(c.Context(), actorFrom(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateExpense PUT /api/expenses/:id. approved y paid fijan sus fechas.
func (h *AccountingHandler) UpdateExpense(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.UpdateExpenseRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.expenses.Update(c.Context(), actorFrom(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ── Cuentas ───────────────────────────────────────────────────────────────────

type ledgerQuery struct {
	dto.PageRequest
	CustomerID string `query:"customer_id"`
	SupplierID string `query:"supplier_id"`
}

// Receivables GET /api/receivables?customer_id=
func (h *AccountingHandler) Receivables(c *fiber.Ctx) error {
	var q ledgerQuery
	if err := parseQuery(c, &q); err != nil {
		return writeError(c, err)
	}
	out, err := h.ledger.Receivables(c.Context(), actorFrom(c), q.CustomerID, q.PageRequest)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Payables GET /api/payables?supplier_id=
func (h *AccountingHandler) Payables(c *fiber.Ctx) error {
	var q ledgerQuery
	if err := parseQuery(c, &q); err != nil {
		return writeError(c, err)
	}
	out, err := h.ledger.Payables(c.Context(), actorFrom(c), q.SupplierID, q.PageRequest)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Stats godoc
// @Summary      Estadísticas contables
// @Tags         accounting
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.AccountingStatsResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/accounting/stats [get]
func (h *AccountingHandler) Stats(c *fiber.Ctx) error {
	out, err := h.ledger.Stats(c.Context(), actorFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
