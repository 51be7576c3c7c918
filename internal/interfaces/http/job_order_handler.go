package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/taller-api/internal/application/dto"
	"github.com/jhoicas/taller-api/internal/application/workshop"
)

// JobOrderHandler órdenes de trabajo con sus líneas y tiempos de técnico.
type JobOrderHandler struct {
	orders *workshop.JobOrderUseCase
	items  *workshop.ItemUseCase
}

// NewJobOrderHandler construye el handler.
func NewJobOrderHandler(orders *workshop.JobOrderUseCase, items *workshop.ItemUseCase) *JobOrderHandler {
	return &JobOrderHandler{orders: orders, items: items}
}

// List godoc
// @Summary      Listar órdenes de trabajo
// @Description  El técnico ve todas las órdenes; sin acceso al taller la lista llega vacía.
// @Tags         job-orders
// @Produce      json
// @Security     BearerAuth
// @Param        status               query  string  false  "estado"
// @Param        priority             query  string  false  "low | normal | high | urgent"
// @Param        assigned_technician  query  string  false  "ID del técnico"
// @Param        customer_id          query  string  false  "cliente"
// @Param        vehicle_id           query  string  false  "vehículo"
// @Param        search               query  string  false  "número, servicio o descripción"
// @Param        limit                query  int     false  "máx. resultados"
// @Param        offset               query  int     false  "desplazamiento"
// @Success      200  {object}  dto.ListResponse[dto.JobOrderResponse]
// @Router       /api/job-orders [get]
func (h *JobOrderHandler) List(c *fiber.Ctx) error {
	var in dto.JobOrderListRequest
	if err := parseQuery(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.orders.List(c.Context(), actorFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear orden de trabajo
// @Description  Asigna el número JOyyyymmNNNN y registra el historial inicial en la misma transacción.
// @Tags         job-orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateJobOrderRequest  true  "orden"
// @Success      201   {object}  dto.JobOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/job-orders [post]
func (h *JobOrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateJobOrderRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.orders.Create(c.Context(), actorFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Detalle de la orden
// @Description  Incluye líneas, tiempos de técnico e historial de estados.
// @Tags         job-orders
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.JobOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/job-orders/{id} [get]
func (h *JobOrderHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.orders.GetByID(c.Context(), actorFrom(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update PUT /api/job-orders/:id. Un cambio de estado deja registro en el historial.
func (h *JobOrderHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.UpdateJobOrderRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.orders.Update(c.Context(), actorFrom(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado
// @Tags         job-orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                   true  "ID de la orden"
// @Param        body  body  dto.UpdateStatusRequest  true  "status, notes"
// @Success      200   {object}  dto.JobOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/job-orders/{id}/update-status [post]
func (h *JobOrderHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.UpdateStatusRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.orders.UpdateStatus(c.Context(), actorFrom(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete DELETE /api/job-orders/:id
func (h *JobOrderHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	if err := h.orders.Delete(c.Context(), actorFrom(c), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// History GET /api/job-orders/:id/history
func (h *JobOrderHandler) History(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.orders.History(c.Context(), actorFrom(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Stats godoc
// @Summary      Estadísticas de órdenes
// @Tags         job-orders
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.JobOrderStatsResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/job-orders/stats [get]
func (h *JobOrderHandler) Stats(c *fiber.Ctx) error {
	out, err := h.orders.Stats(c.Context(), actorFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ── Líneas ────────────────────────────────────────────────────────────────────

// ListItems GET /api/job-orders/:id/items
func (h *JobOrderHandler) ListItems(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.items.ListItems(c.Context(), actorFrom(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AddItem godoc
// @Summary      Agregar línea
// @Description  total_price se calcula siempre: horas × tarifa para mano de obra, cantidad × precio en otro caso.
// @Tags         job-orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                   true  "ID de la orden"
// @Param        body  body  dto.JobOrderItemRequest  true  "línea"
// @Success      201   {object}  dto.JobOrderItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/job-orders/{id}/items [post]
func (h *JobOrderHandler) AddItem(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.JobOrderItemRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.items.AddItem(c.Context(), actorFrom(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateItem PUT /api/job-orders/:id/items/:itemId
func (h *JobOrderHandler) UpdateItem(c *fiber.Ctx) error {
	id, itemID, err := twoIDs(c, "id", "itemId")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.JobOrderItemRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.items.UpdateItem(c.Context(), actorFrom(c), id, itemID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteItem DELETE /api/job-orders/:id/items/:itemId
func (h *JobOrderHandler) DeleteItem(c *fiber.Ctx) error {
	id, itemID, err := twoIDs(c, "id", "itemId")
	if err != nil {
		return writeError(c, err)
	}
	if err := h.items.DeleteItem(c.Context(), actorFrom(c), id, itemID); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ── Tiempos de técnico ────────────────────────────────────────────────────────

// ListTimes GET /api/job-orders/:id/technician-times
func (h *JobOrderHandler) ListTimes(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.items.ListTimes(c.Context(), actorFrom(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AddTime godoc
// @Summary      Registrar tiempo de técnico
// @Description  Sin technician_id se usa el usuario autenticado. hours_worked queda nulo sin end_time.
// @Tags         job-orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                     true  "ID de la orden"
// @Param        body  body  dto.TechnicianTimeRequest  true  "tiempo"
// @Success      201   {object}  dto.TechnicianTimeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/job-orders/{id}/technician-times [post]
func (h *JobOrderHandler) AddTime(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.TechnicianTimeRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.items.AddTime(c.Context(), actorFrom(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateTime PUT /api/job-orders/:id/technician-times/:timeId
func (h *JobOrderHandler) UpdateTime(c *fiber.Ctx) error {
	id, timeID, err := twoIDs(c, "id", "timeId")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.TechnicianTimeRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.items.UpdateTime(c.Context(), actorFrom(c), id, timeID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteTime DELETE /api/job-orders/:id/technician-times/:timeId
func (h *JobOrderHandler) DeleteTime(c *fiber.Ctx) error {
	id, timeID, err := twoIDs(c, "id", "timeId")
	if err != nil {
		return writeError(c, err)
	}
	if err := h.items.DeleteTime(c.Context(), actorFrom(c), id, timeID); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func twoIDs(c *fiber.Ctx, a, b string) (string, string, error) {
	first, err := paramID(c, a)
	if err != nil {
		return "", "", err
	}
	second, err := paramID(c, b)
	if err != nil {
		return "", "", err
	}
	return first, second, nil
}
