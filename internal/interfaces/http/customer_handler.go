package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Rechnungen-api/internal/application/billing"
	"github.com/jhoicas/Rechnungen-api/internal/application/dto"
)

// CustomerHandler maneja las peticiones HTTP de clientes.
type CustomerHandler struct {
	uc *billing.CustomerUseCase
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(uc *billing.CustomerUseCase) *CustomerHandler {
	return &CustomerHandler{uc: uc}
}

// Create godoc
// @Summary      Crear cliente
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CustomerRequest  true  "name obligatorio"
// @Success      201   {object}  entity.Customer
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/customers [post]
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var in dto.CustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	customer, err := h.uc.Create(in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(customer)
}

// List godoc
// @Summary      Listar clientes
// @Tags         customers
// @Produce      json
// @Success      200  {array}  entity.Customer
// @Router       /api/customers [get]
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	return c.JSON(h.uc.List())
}

// GetByID godoc
// @Summary      Obtener cliente
// @Tags         customers
// @Produce      json
// @Param        id   path      string  true  "ID"
// @Success      200  {object}  entity.Customer
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [get]
func (h *CustomerHandler) GetByID(c *fiber.Ctx) error {
	customer, err := h.uc.Get(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(customer)
}

// Update godoc
// @Summary      Modificar cliente
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        id    path      string  true  "ID"
// @Param        body  body      dto.CustomerRequest  true  "campos a modificar"
// @Success      200   {object}  entity.Customer
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [patch]
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	var in dto.CustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	customer, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(customer)
}

// PartnerHandler maneja las peticiones HTTP de socios de cooperación.
type PartnerHandler struct {
	uc *billing.PartnerUseCase
}

// NewPartnerHandler construye el handler.
func NewPartnerHandler(uc *billing.PartnerUseCase) *PartnerHandler {
	return &PartnerHandler{uc: uc}
}

// Create godoc
// @Summary      Crear socio
// @Tags         partners
// @Accept       json
// @Produce      json
// @Param        body  body      dto.PartnerRequest  true  "name obligatorio"
// @Success      201   {object}  entity.Partner
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/partners [post]
func (h *PartnerHandler) Create(c *fiber.Ctx) error {
	var in dto.PartnerRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	partner, err := h.uc.Create(in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(partner)
}

// List godoc
// @Summary      Listar socios
// @Tags         partners
// @Produce      json
// @Success      200  {array}  entity.Partner
// @Router       /api/partners [get]
func (h *PartnerHandler) List(c *fiber.Ctx) error {
	return c.JSON(h.uc.List())
}

// GetByID godoc
// @Summary      Obtener socio
// @Tags         partners
// @Produce      json
// @Param        id   path      string  true  "ID"
// @Success      200  {object}  entity.Partner
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/partners/{id} [get]
func (h *PartnerHandler) GetByID(c *fiber.Ctx) error {
	partner, err := h.uc.Get(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(partner)
}

// Update godoc
// @Summary      Modificar socio
// @Tags         partners
// @Accept       json
// @Produce      json
// @Param        id    path      string  true  "ID"
// @Param        body  body      dto.PartnerRequest  true  "campos a modificar"
// @Success      200   {object}  entity.Partner
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/partners/{id} [patch]
func (h *PartnerHandler) Update(c *fiber.Ctx) error {
	var in dto.PartnerRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	partner, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(partner)
}
