package main

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/vfg2006/manipulados-eda/infrastructure/integrator/anvisa"
	"github.com/vfg2006/manipulados-eda/infrastructure/integrator/anvisa/anvisaclient"
	"github.com/vfg2006/manipulados-eda/infrastructure/source"
	"github.com/vfg2006/manipulados-eda/internal/config"
	"github.com/vfg2006/manipulados-eda/internal/scheduler"
	"github.com/vfg2006/manipulados-eda/internal/usecases/filtering"
	"github.com/vfg2006/manipulados-eda/internal/usecases/loading"
	"github.com/vfg2006/manipulados-eda/internal/usecases/visualizing"
	"github.com/vfg2006/manipulados-eda/pkg/log"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// application guarda as dependências montadas para o comando em execução
type application struct {
	stdout io.Writer
	stderr io.Writer

	cfg        *config.Config
	loader     loading.DatasetLoader
	filter     filtering.RowFilter
	integrator anvisa.AnvisaIntegrator
	visualizer *visualizing.Service
	mirror     *scheduler.MirrorSyncService
}

// run executa a linha de comando e devolve o status de saída do processo
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	app := &application{stdout: stdout, stderr: stderr}

	root := app.rootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		return app.fail(err)
	}
	return 0
}

func (a *application) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:               "eda",
		Short:             "Análise exploratória da base de Manipulados da ANVISA",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	root.SetFlagErrorFunc(flagError)

	root.AddCommand(
		a.monthsCommand(),
		a.loadCommand(),
		a.filterCommand(),
		a.countCommand(),
		a.downloadCommand(),
		a.mirrorCommand(),
		a.renderCommand(),
		a.gifCommand(),
	)

	return root
}

// setup carrega a configuração e monta os serviços antes de qualquer subcomando
func (a *application) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.NewConfig()
	if err != nil {
		return err
	}

	log.Configure(cfg.App.LogLevel, a.stderr)

	ctx, runID := log.WithRunID(cmd.Context())
	cmd.SetContext(ctx)

	a.cfg = cfg
	a.loader = loading.NewService(cfg, source.NewCSVReader())
	a.filter = filtering.NewService()
	a.integrator = anvisa.New(cfg, anvisaclient.NewClient(cfg))
	a.visualizer = visualizing.NewService(cfg, a.loader, a.filter)
	a.mirror = scheduler.NewMirrorSyncService(a.integrator, cfg)

	log.L.WithFields(log.Fields{
		"run_id":  runID,
		"command": cmd.CommandPath(),
	}).Debug("Execução iniciada")

	return nil
}
