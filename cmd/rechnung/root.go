package main

import (
	"context"
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/jhoicas/Rechnungen-api/internal/bootstrap"
	"github.com/jhoicas/Rechnungen-api/internal/infrastructure/preview"
	"github.com/jhoicas/Rechnungen-api/pkg/config"
	"github.com/jhoicas/Rechnungen-api/pkg/logger"
)

var version = "1.0.0"

// cli estado compartido por los subcomandos; el runtime se abre antes de cada comando.
type cli struct {
	stdout io.Writer
	stderr io.Writer

	cfg   *config.Config
	log   *logger.Logger
	rt    *bootstrap.Runtime
	spool *preview.Spool
}

// execute construye el árbol de comandos y lo ejecuta con args.
func execute(args []string, stdout, stderr io.Writer) error {
	c := &cli{stdout: stdout, stderr: stderr}
	defer c.close()

	root := c.rootCmd()
	root.SetArgs(args)
	return root.ExecuteContext(context.Background())
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "rechnung",
		Short: "Provisionsrechnungen (Vermittlungsprovision) verwalten",
		Long: `rechnung arbeitet auf demselben Speicher wie der HTTP-Server
(STORAGE_DRIVER=file|postgres): Rechnungen auflisten, Status setzen,
PDF erzeugen und den gespeicherten Zustand auf die aktuelle Version migrieren.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.open(cmd.Context())
		},
	}
	root.SetOut(c.stdout)
	root.SetErr(c.stderr)

	root.AddCommand(
		c.listCmd(),
		c.nextNumberCmd(),
		c.statusCmd(),
		c.pdfCmd(),
		c.migrateCmd(),
		c.reportCmd(),
	)
	return root
}

func (c *cli) open(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.log = logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Output: c.stderr})

	c.spool = preview.New(afero.NewOsFs(),
		preview.WithDir(cfg.Render.PreviewDir),
		preview.WithTTL(cfg.Render.PreviewTTL),
		preview.WithLogger(c.log.Component("preview")),
	)

	rt, err := bootstrap.Open(ctx, cfg, c.log, c.spool)
	if err != nil {
		return err
	}
	c.rt = rt
	return nil
}

func (c *cli) close() {
	if c.spool != nil {
		if err := c.spool.Close(); err != nil && c.log != nil {
			c.log.Warn().Err(err).Msg("no se pudieron borrar las vistas previas")
		}
	}
	if c.rt != nil {
		c.rt.Close()
	}
}
