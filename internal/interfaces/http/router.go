package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Rechnungen-api/internal/application/billing"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ServiceName string
	InvoiceUC   *billing.InvoiceUseCase
	DocumentUC  *billing.DocumentUseCase
	PartnerUC   *billing.PartnerUseCase
	CustomerUC  *billing.CustomerUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	})

	api := app.Group("/api")

	// Invoices
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.DocumentUC)
	invoices := api.Group("/invoices")
	invoices.Get("/", invoiceHandler.List)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/summary", invoiceHandler.Summary)
	invoices.Post("/preview", invoiceHandler.Preview)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Patch("/:id", invoiceHandler.Update)
	invoices.Delete("/:id", invoiceHandler.Delete)
	invoices.Put("/:id/status", invoiceHandler.SetStatus)
	invoices.Post("/:id/header-text", invoiceHandler.RegenerateHeader)
	invoices.Post("/:id/send", invoiceHandler.Send)
	invoices.Get("/:id/pdf", invoiceHandler.PDF)

	// Filtro de la lista
	api.Get("/filter", invoiceHandler.GetFilter)
	api.Put("/filter", invoiceHandler.SetFilter)

	// Partners
	partnerHandler := NewPartnerHandler(deps.PartnerUC)
	partners := api.Group("/partners")
	partners.Get("/", partnerHandler.List)
	partners.Post("/", partnerHandler.Create)
	partners.Get("/:id", partnerHandler.GetByID)
	partners.Patch("/:id", partnerHandler.Update)

	// Customers
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers := api.Group("/customers")
	customers.Get("/", customerHandler.List)
	customers.Post("/", customerHandler.Create)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Patch("/:id", customerHandler.Update)
}
