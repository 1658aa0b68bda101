package cmd

import (
	"context"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/psantana5/procwatch/internal/supervisor"
	"github.com/psantana5/procwatch/pkg/api"
	"github.com/psantana5/procwatch/pkg/config"
	"github.com/psantana5/procwatch/pkg/hostinfo"
	"github.com/psantana5/procwatch/pkg/logging"
	"github.com/psantana5/procwatch/pkg/metrics"
	"github.com/psantana5/procwatch/pkg/runner"
	"github.com/psantana5/procwatch/pkg/shutdown"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the supervisor",
	Long: `Starts the worker pool and the primary process and supervises them until a
termination signal arrives. Workers are launched first; the primary loop
then occupies the foreground for the lifetime of the process.`,
	RunE: runSupervisor,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("worker-cmd", "", "worker executable, invoked with the slot index (default ./worker)")
	runCmd.Flags().String("primary-cmd", "", "primary executable, invoked with no arguments (default ./server)")
	runCmd.Flags().String("status-addr", "", "listen address for the status/metrics HTTP endpoint (disabled when empty)")

	viper.BindPFlag("worker_command", runCmd.Flags().Lookup("worker-cmd"))
	viper.BindPFlag("primary_command", runCmd.Flags().Lookup("primary-cmd"))
	viper.BindPFlag("status_addr", runCmd.Flags().Lookup("status-addr"))
}

func runSupervisor(cmd *cobra.Command, args []string) error {
	logger, err := logging.NewFileLogger("supervisor", logging.ParseLevel(logLevel), false)
	if err != nil {
		return err
	}
	defer logger.Close()

	cfg, err := config.Resolve(viper.GetViper())
	if err != nil {
		return err
	}

	host := hostinfo.Detect()
	logger.Info("Starting procwatch supervisor", map[string]interface{}{
		"workers": cfg.PoolSize,
		"worker":  cfg.WorkerCommand,
		"primary": cfg.PrimaryCommand,
	})
	logger.Info("Host detected", map[string]interface{}{
		"cpu":     host.CPUModel,
		"threads": host.CPUThreads,
		"ram":     hostinfo.FormatRAM(host.RAMTotalBytes),
	})

	exporter := metrics.NewExporter()
	sup := supervisor.New(cfg, runner.New(), logger).WithObserver(exporter)

	mgr := shutdown.New()
	ctx := mgr.Context(cmd.Context())

	if cfg.StatusAddr != "" {
		startStatusServer(ctx, cfg.StatusAddr, sup, exporter, host, logger)
	}

	// Workers first, then the primary loop on the foreground.
	sup.StartWorkers(ctx)
	sup.RunPrimary(ctx)

	logger.Info("Shutdown signal received, draining workers")
	sup.Wait()
	logger.Info("All supervision loops stopped")
	return nil
}

func startStatusServer(ctx context.Context, addr string, sup *supervisor.Supervisor, exporter *metrics.Exporter, host hostinfo.Info, logger *logging.Logger) {
	srv := api.NewServer(sup, exporter.Handler(), host)
	httpSrv := &http.Server{
		Addr:    addr,
		Handler: srv.Router(),
	}

	go func() {
		logger.Info("Status endpoint listening", map[string]interface{}{"addr": addr})
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Status server failed", map[string]interface{}{"error": err.Error()})
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		httpSrv.Shutdown(shutdownCtx)
	}()
}
