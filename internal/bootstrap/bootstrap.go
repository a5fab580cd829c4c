// Package bootstrap monta el grafo de dependencias común al servidor HTTP y a la CLI:
// almacén de estado, repositorio, generador de PDF y casos de uso.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/afero"

	"github.com/jhoicas/Rechnungen-api/internal/application/billing"
	"github.com/jhoicas/Rechnungen-api/internal/domain/entity"
	"github.com/jhoicas/Rechnungen-api/internal/domain/repository"
	"github.com/jhoicas/Rechnungen-api/internal/infrastructure/filestore"
	"github.com/jhoicas/Rechnungen-api/internal/infrastructure/memory"
	"github.com/jhoicas/Rechnungen-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Rechnungen-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Rechnungen-api/pkg/config"
	"github.com/jhoicas/Rechnungen-api/pkg/logger"
)

// Runtime dependencias montadas. Reports solo existe con el driver postgres.
type Runtime struct {
	Store     *memory.InvoiceStore
	Reports   *postgres.StateStore
	Generator *pdf.MarotoPDFGenerator

	Invoices  *billing.InvoiceUseCase
	Documents *billing.DocumentUseCase
	Partners  *billing.PartnerUseCase
	Customers *billing.CustomerUseCase

	pool *pgxpool.Pool
}

// Open abre el almacén configurado, carga (y migra) el estado y construye los casos de uso.
// spool puede ser nil.
func Open(ctx context.Context, cfg *config.Config, log *logger.Logger, spool billing.PreviewSpool) (*Runtime, error) {
	rt := &Runtime{}

	var stateStore repository.StateStore
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB, log.Component("postgres"))
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		rt.pool = pool
		pg := postgres.NewStateStore(pool)
		if err := pg.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, err
		}
		rt.Reports = pg
		stateStore = pg
	default:
		stateStore = filestore.NewOS(cfg.Storage.FilePath)
	}

	store, err := memory.Open(ctx, stateStore,
		memory.WithLogger(log.Component("store")),
		memory.WithStorageKey(cfg.Storage.Key),
	)
	if err != nil {
		rt.Close()
		return nil, err
	}
	rt.Store = store

	rt.Generator = NewGenerator(cfg, log)
	rt.Invoices = billing.NewInvoiceUseCase(store, store, store, nil)
	rt.Documents = billing.NewDocumentUseCase(store, store, store, rt.Invoices, rt.Generator, spool, log.Component("documents"))
	rt.Partners = billing.NewPartnerUseCase(store)
	rt.Customers = billing.NewCustomerUseCase(store)
	return rt, nil
}

// Close libera el pool de PostgreSQL si lo hay.
func (rt *Runtime) Close() {
	if rt.pool != nil {
		rt.pool.Close()
		rt.pool = nil
	}
}

// NewGenerator generador de PDF con la cadena de logo fichero local -> URL -> marca en texto.
func NewGenerator(cfg *config.Config, log *logger.Logger) *pdf.MarotoPDFGenerator {
	sources := []pdf.LogoSource{pdf.NewFileLogoSource(afero.NewOsFs(), cfg.Company.LogoPath)}
	if cfg.Company.LogoURL != "" {
		sources = append(sources, pdf.NewURLLogoSource(cfg.Company.LogoURL, cfg.Render.LogoTimeout, cfg.Render.LogoRetries))
	}
	pdfLog := log.Component("pdf")
	return pdf.NewMarotoPDFGenerator(Company(cfg.Company),
		pdf.WithLogoChain(pdf.NewLogoChain(pdfLog, sources...).RetryAfter(cfg.Render.LogoRetryAfter)),
		pdf.WithGiroCode(cfg.Render.GiroCode),
		pdf.WithGeneratorLogger(pdfLog),
	)
}

// Company perfil de la empresa emisora a partir de la configuración.
func Company(c config.CompanyConfig) entity.Company {
	return entity.Company{
		Name:         c.Name,
		Wordmark:     c.Wordmark,
		Address:      c.Address,
		PostalCode:   c.PostalCode,
		City:         c.City,
		Country:      c.Country,
		LogoPath:     c.LogoPath,
		LogoURL:      c.LogoURL,
		PrimaryColor: c.PrimaryColor,
		BankName:     c.BankName,
		IBAN:         c.IBAN,
		BIC:          c.BIC,
		TaxID:        c.TaxID,
		VATID:        c.VATID,
	}
}
