package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/jhoicas/Rechnungen-api/internal/application/billing"
	"github.com/jhoicas/Rechnungen-api/internal/domain/entity"
	"github.com/jhoicas/Rechnungen-api/internal/infrastructure/state"
	"github.com/jhoicas/Rechnungen-api/pkg/money"
)

// ── list ─────────────────────────────────────────────────────────────────────

func (c *cli) listCmd() *cobra.Command {
	var status string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Listet die Rechnungen (Standard: gespeicherter Filter)",
		Example: `  rechnung list
  rechnung list --status offen`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list, err := c.rt.Invoices.List(entity.InvoiceFilter(status))
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(c.stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NUMMER\tDATUM\tSTATUS\tPARTNER\tBETRAG\tOFFEN")
			for _, inv := range list.Invoices {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					inv.InvoiceNumber,
					inv.InvoiceDate,
					inv.StatusLabel,
					orDash(inv.PartnerName),
					money.FormatEUR(inv.CommissionAmount),
					money.FormatEUR(inv.OpenAmount),
				)
			}
			fmt.Fprintf(w, "\t\t\t%d Rechnungen\t%s\t%s\n",
				list.Summary.Count,
				money.FormatEUR(list.Summary.CommissionTotal),
				money.FormatEUR(list.Summary.OpenTotal),
			)
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "Filter: alle|entwurf|offen|faellig|festgeschrieben")
	return cmd
}

// ── next-number ──────────────────────────────────────────────────────────────

func (c *cli) nextNumberCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "next-number",
		Short: "Zeigt die nächste freie Rechnungsnummer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(c.stdout, c.rt.Invoices.NextNumber())
			return err
		},
	}
}

// ── status ───────────────────────────────────────────────────────────────────

func (c *cli) statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "status <id> <status>",
		Short:   "Setzt den Status einer Rechnung",
		Example: `  rechnung status inv1 offen`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			inv, err := c.rt.Invoices.SetStatus(args[0], entity.Status(args[1]))
			if err != nil {
				return err
			}
			locked := "nein"
			if inv.IsLocked {
				locked = "ja"
			}
			_, err = fmt.Fprintf(c.stdout, "%s: %s (gesperrt: %s)\n", inv.InvoiceNumber, inv.StatusLabel, locked)
			return err
		},
	}
}

// ── pdf ──────────────────────────────────────────────────────────────────────

func (c *cli) pdfCmd() *cobra.Command {
	var (
		previewMode bool
		outDir      string
	)
	cmd := &cobra.Command{
		Use:   "pdf <id>",
		Short: "Erzeugt das PDF einer Rechnung",
		Long: `Ohne --preview wird Rechnung-<Nr>.pdf in --out gespeichert (Standard: RENDER_OUTPUT_DIR).
Mit --preview wird eine temporäre Datei im Systembetrachter geöffnet und nach
RENDER_PREVIEW_TTL (oder Strg+C) wieder gelöscht.`,
		Example: `  rechnung pdf inv1 --out ./rechnungen
  rechnung pdf inv1 --preview`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode := billing.ModeSave
			if previewMode {
				mode = billing.ModePreview
			}
			doc, err := c.rt.Documents.Render(cmd.Context(), args[0], mode)
			if err != nil {
				return err
			}

			if mode == billing.ModePreview {
				fmt.Fprintf(c.stdout, "Vorschau: %s (wird nach %s gelöscht)\n", doc.PreviewPath, c.cfg.Render.PreviewTTL)
				ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
				defer stop()
				select {
				case <-ctx.Done():
				case <-time.After(c.cfg.Render.PreviewTTL):
				}
				return nil
			}

			dir := outDir
			if dir == "" {
				dir = c.cfg.Render.OutputDir
			}
			fs := afero.NewOsFs()
			if err := fs.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("crear directorio de salida: %w", err)
			}
			path := filepath.Join(dir, doc.Filename)
			if err := afero.WriteFile(fs, path, doc.Content, 0o644); err != nil {
				return fmt.Errorf("guardar %s: %w", path, err)
			}
			_, err = fmt.Fprintln(c.stdout, path)
			return err
		},
	}
	cmd.Flags().BoolVar(&previewMode, "preview", false, "Vorschau öffnen statt speichern")
	cmd.Flags().StringVar(&outDir, "out", "", "Zielverzeichnis")
	return cmd
}

// ── migrate ──────────────────────────────────────────────────────────────────

func (c *cli) migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Schreibt den gespeicherten Zustand in der aktuellen Version neu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.rt.Store.Flush(cmd.Context()); err != nil {
				return err
			}
			_, err := fmt.Fprintf(c.stdout, "Zustand %q gespeichert (Version %d)\n", c.cfg.Storage.Key, state.CurrentVersion)
			return err
		},
	}
}

// ── report ───────────────────────────────────────────────────────────────────

func (c *cli) reportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Anzahl und Provision je Status",
		Long: `Mit STORAGE_DRIVER=postgres wird direkt in SQL über den gespeicherten Zustand summiert,
sonst im Speicher.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(c.stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "STATUS\tANZAHL\tPROVISION")

			if c.rt.Reports != nil {
				totals, err := c.rt.Reports.TotalsByStatus(cmd.Context(), c.cfg.Storage.Key)
				if err != nil {
					return err
				}
				for _, t := range totals {
					fmt.Fprintf(w, "%s\t%d\t%s\n", entity.Status(t.Status).Label(), t.Count, money.FormatEUR(t.Commission))
				}
				return w.Flush()
			}

			for _, s := range c.rt.Invoices.Summary().ByStatus {
				if s.Count == 0 {
					continue
				}
				fmt.Fprintf(w, "%s\t%d\t%s\n", s.Label, s.Count, money.FormatEUR(s.Commission))
			}
			return w.Flush()
		},
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
