// Command import-planilla loads the payroll CSV into the configured store.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"examen-portal/internal/bootstrap"
	"examen-portal/internal/config"
	"examen-portal/internal/logging"
	"examen-portal/internal/planilla"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		archivo string
		vaciar  bool
	)

	cmd := &cobra.Command{
		Use:          "import-planilla",
		Short:        "Importa la planilla de sueldos desde un archivo CSV",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), cmd.OutOrStdout(), archivo, vaciar)
		},
	}

	cmd.Flags().StringVarP(&archivo, "archivo", "a", "", "ruta del CSV (por defecto CSV_FILE_PATH)")
	cmd.Flags().BoolVar(&vaciar, "vaciar", false, "elimina los registros existentes antes de importar")
	return cmd
}

func run(ctx context.Context, out io.Writer, archivo string, vaciar bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := logging.Setup(cfg.IsProduction())

	if archivo == "" {
		archivo = cfg.CSVFilePath
	}

	stores, err := bootstrap.OpenStores(cfg)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := stores.Close(closeCtx); err != nil {
			logger.Error().Err(err).Msg("failed to close store")
		}
	}()

	importer := planilla.NewImporter(stores.Payroll, logger.With().Str("component", "import-planilla").Logger())
	res, err := importer.ImportFile(ctx, archivo, planilla.Options{Replace: vaciar})
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Se insertaron %d registros (%d advertencias)\n", res.Inserted, len(res.Warnings))
	return nil
}
