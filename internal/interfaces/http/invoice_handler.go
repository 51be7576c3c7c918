package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/taller-api/internal/application/accounting"
	"github.com/jhoicas/taller-api/internal/application/dto"
)

// InvoiceHandler facturas, sus líneas y el cobro contra una factura.
type InvoiceHandler struct {
	invoices *accounting.InvoiceUseCase
	payments *accounting.PaymentUseCase
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(invoices *accounting.InvoiceUseCase, payments *accounting.PaymentUseCase) *InvoiceHandler {
	return &InvoiceHandler{invoices: invoices, payments: payments}
}

// List godoc
// @Summary      Listar facturas
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Param        customer_id  query  string  false  "cliente"
// @Param        status       query  string  false  "estado"
// @Param        search       query  string  false  "número o nombre del cliente"
// @Param        limit        query  int     false  "máx. resultados"
// @Param        offset       query  int     false  "desplazamiento"
// @Success      200  {object}  dto.ListResponse[dto.InvoiceResponse]
// @Router       /api/invoices [get]
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	var in dto.InvoiceListRequest
	if err := parseQuery(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.invoices.List(c.Context(), actorFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear factura
// @Description  Asigna INVyyyymmNNNN, fija el vencimiento según payment_terms, recalcula montos y abre la cuenta por cobrar.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateInvoiceRequest  true  "factura"
// @Success      201   {object}  dto.InvoiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/invoices [post]
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.invoices.Create(c.Context(), actorFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener factura por ID
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {object}  dto.InvoiceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id} [get]
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.invoices.GetByID(c.Context(), actorFrom(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update PUT /api/invoices/:id. Los montos derivados se recalculan siempre.
func (h *InvoiceHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.UpdateInvoiceRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.invoices.Update(c.Context(), actorFrom(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AddItem POST /api/invoices/:id/items; devuelve la factura recalculada.
func (h *InvoiceHandler) AddItem(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.InvoiceItemRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.invoices.AddItem(c.Context(), actorFrom(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateItem PUT /api/invoices/:id/items/:itemId; devuelve la factura recalculada.
func (h *InvoiceHandler) UpdateItem(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	itemID, err := paramID(c, "itemId")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.UpdateInvoiceItemRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.invoices.UpdateItem(c.Context(), actorFrom(c), id, itemID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteItem DELETE /api/invoices/:id/items/:itemId
func (h *InvoiceHandler) DeleteItem(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	itemID, err := paramID(c, "itemId")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.invoices.DeleteItem(c.Context(), actorFrom(c), id, itemID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete DELETE /api/invoices/:id. Una factura con pagos no se borra (409).
func (h *InvoiceHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	if err := h.invoices.Delete(c.Context(), actorFrom(c), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ProcessPayment godoc
// @Summary      Cobrar factura
// @Description  Registra el pago (PAYyyyymmNNNN), suma paid_amount y marca la factura paid cuando el saldo llega a cero.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                    true  "ID de la factura"
// @Param        body  body  dto.CreatePaymentRequest  true  "amount, payment_method"
// @Success      201   {object}  dto.ProcessPaymentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/process-payment [post]
func (h *InvoiceHandler) ProcessPayment(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.CreatePaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	in.InvoiceID = id
	if err := validateStruct(&in); err != nil {
		return writeError(c, err)
	}
	out, err := h.payments.ProcessInvoicePayment(c.Context(), actorFrom(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
