package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Rechnungen-api/internal/application/billing"
	"github.com/jhoicas/Rechnungen-api/internal/application/dto"
	"github.com/jhoicas/Rechnungen-api/internal/domain/entity"
)

// InvoiceHandler maneja las peticiones HTTP de facturas de comisión.
type InvoiceHandler struct {
	uc   *billing.InvoiceUseCase
	docs *billing.DocumentUseCase
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(uc *billing.InvoiceUseCase, docs *billing.DocumentUseCase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc, docs: docs}
}

// List godoc
// @Summary      Listar facturas
// @Description  Sin status se aplica el filtro guardado; con status se filtra sin guardarlo.
// @Tags         invoices
// @Produce      json
// @Param        status  query     string  false  "alle|entwurf|offen|faellig|festgeschrieben"
// @Success      200     {object}  dto.InvoiceListResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/invoices [get]
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(entity.InvoiceFilter(c.Query("status")))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// Summary godoc
// @Summary      Resumen por estado
// @Tags         invoices
// @Produce      json
// @Success      200  {object}  dto.SummaryResponse
// @Router       /api/invoices/summary [get]
func (h *InvoiceHandler) Summary(c *fiber.Ctx) error {
	return c.JSON(h.uc.Summary())
}

// Create godoc
// @Summary      Crear factura
// @Description  Número vacío = siguiente libre; la tasa por defecto es la del socio.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        body  body      dto.InvoiceRequest  true  "partnerId obligatorio; importes como número o texto"
// @Success      201   {object}  dto.InvoiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/invoices [post]
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.InvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	inv, err := h.uc.Create(in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(inv)
}

// GetByID godoc
// @Summary      Obtener factura
// @Tags         invoices
// @Produce      json
// @Param        id   path      string  true  "ID de la factura"
// @Success      200  {object}  dto.InvoiceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id} [get]
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	inv, err := h.uc.Get(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(inv)
}

// Update godoc
// @Summary      Modificar factura
// @Description  Solo se aplican los campos presentes; los derivados se recalculan.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        id    path      string              true  "ID de la factura"
// @Param        body  body      dto.InvoiceRequest  true  "campos a modificar"
// @Success      200   {object}  dto.InvoiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/invoices/{id} [patch]
func (h *InvoiceHandler) Update(c *fiber.Ctx) error {
	var in dto.InvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	inv, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(inv)
}

// Delete godoc
// @Summary      Eliminar factura
// @Tags         invoices
// @Param        id   path  string  true  "ID de la factura"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id} [delete]
func (h *InvoiceHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SetStatus godoc
// @Summary      Cambiar estado
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "ID de la factura"
// @Param        body  body      dto.StatusRequest  true  "entwurf|offen|faellig|bezahlt|festgeschrieben"
// @Success      200   {object}  dto.InvoiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/status [put]
func (h *InvoiceHandler) SetStatus(c *fiber.Ctx) error {
	var in dto.StatusRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	inv, err := h.uc.SetStatus(c.Params("id"), in.Status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(inv)
}

// RegenerateHeader godoc
// @Summary      Regenerar texto de cabecera
// @Description  Sin cliente o sin importe acordado devuelve regenerated=false y la factura sin cambios.
// @Tags         invoices
// @Produce      json
// @Param        id   path      string  true  "ID de la factura"
// @Success      200  {object}  dto.HeaderTextResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/header-text [post]
func (h *InvoiceHandler) RegenerateHeader(c *fiber.Ctx) error {
	res, err := h.uc.RegenerateHeader(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(res)
}

// Send godoc
// @Summary      Emitir y descargar
// @Description  Marca la factura como "offen" y devuelve el PDF como adjunto.
// @Tags         documents
// @Produce      application/pdf
// @Param        id   path      string  true  "ID de la factura"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/send [post]
func (h *InvoiceHandler) Send(c *fiber.Ctx) error {
	doc, _, err := h.docs.SendAndRender(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return sendDocument(c, doc)
}

// PDF godoc
// @Summary      PDF de la factura
// @Description  save se descarga como adjunto; preview se muestra en el navegador.
// @Tags         documents
// @Produce      application/pdf
// @Param        id    path      string  true   "ID de la factura"
// @Param        mode  query     string  false  "save|preview"
// @Success      200   {file}    binary
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/pdf [get]
func (h *InvoiceHandler) PDF(c *fiber.Ctx) error {
	mode, err := billing.ParseMode(c.Query("mode"))
	if err != nil {
		return writeError(c, err)
	}
	doc, err := h.docs.Render(c.Context(), c.Params("id"), mode)
	if err != nil {
		return writeError(c, err)
	}
	return sendDocument(c, doc)
}

// Preview godoc
// @Summary      Vista previa de un borrador
// @Description  Renderiza el formulario sin guardarlo ni reservar número.
// @Tags         documents
// @Accept       json
// @Produce      application/pdf
// @Param        body  body      dto.InvoiceRequest  true  "datos del formulario"
// @Success      200   {file}    binary
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/invoices/preview [post]
func (h *InvoiceHandler) Preview(c *fiber.Ctx) error {
	var in dto.InvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	doc, err := h.docs.RenderDraft(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return sendDocument(c, doc)
}

// GetFilter godoc
// @Summary      Filtro guardado de la lista
// @Tags         filter
// @Produce      json
// @Success      200  {object}  dto.FilterResponse
// @Router       /api/filter [get]
func (h *InvoiceHandler) GetFilter(c *fiber.Ctx) error {
	return c.JSON(dto.FilterResponse{Filter: h.uc.Filter()})
}

// SetFilter godoc
// @Summary      Guardar filtro de la lista
// @Tags         filter
// @Accept       json
// @Produce      json
// @Param        body  body      dto.FilterRequest  true  "alle|entwurf|offen|faellig|festgeschrieben"
// @Success      200   {object}  dto.FilterResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/filter [put]
func (h *InvoiceHandler) SetFilter(c *fiber.Ctx) error {
	var in dto.FilterRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := h.uc.SetFilter(in.Filter); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.FilterResponse{Filter: in.Filter})
}

func sendDocument(c *fiber.Ctx, doc *billing.Document) error {
	disposition := "attachment"
	if doc.Mode == billing.ModePreview {
		disposition = "inline"
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("%s; filename=%q", disposition, doc.Filename))
	return c.Send(doc.Content)
}
