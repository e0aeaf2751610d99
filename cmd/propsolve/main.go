// Command propsolve trims the propellers of a run file over its sweep,
// archives the outcomes and optionally writes an xlsx workbook and a pdf
// report. With -serve it exposes the same run over HTTP instead.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sgostarter/i/l"

	"github.com/katalvlaran/propel/component"
	"github.com/katalvlaran/propel/config"
	"github.com/katalvlaran/propel/export"
	"github.com/katalvlaran/propel/httpapi"
	"github.com/katalvlaran/propel/metrics"
	"github.com/katalvlaran/propel/propeller"
	"github.com/katalvlaran/propel/propulsion"
	"github.com/katalvlaran/propel/results"
)

type flags struct {
	config string
	env    string
	serve  bool
	xlsx   string
	pdf    string
}

func main() {
	var f flags
	flag.StringVar(&f.config, "config", "propel.yaml", "run file")
	flag.StringVar(&f.env, "env", "", "dotenv file (default ./.env when present)")
	flag.BoolVar(&f.serve, "serve", false, "serve the run over HTTP instead of sweeping once")
	flag.StringVar(&f.xlsx, "xlsx", "", "write the sweep workbook here (overrides outputs.xlsx)")
	flag.StringVar(&f.pdf, "pdf", "", "write the sweep report here (overrides outputs.pdf)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logger := l.NewConsoleLoggerWrapper()
	if err := run(ctx, f, logger); err != nil {
		logger.WithFields(l.ErrorField(err)).Error("propsolve failed")
		cancel()
		os.Exit(1)
	}
}

func run(ctx context.Context, f flags, logger l.Wrapper) error {
	var envFiles []string
	if f.env != "" {
		envFiles = append(envFiles, f.env)
	}
	if err := config.LoadEnv(envFiles...); err != nil {
		return fmt.Errorf("load env: %w", err)
	}
	cfg, err := config.Load(f.config)
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return err
	}

	m, err := metrics.New(prometheus.DefaultRegisterer)
	if err != nil {
		return err
	}
	rt := config.Runtime{Logger: logger, Metrics: m}
	src, err := cfg.OpenSource(ctx)
	if err != nil {
		return err
	}
	store, err := cfg.LoadPolars(ctx, src, rt)
	if err != nil {
		return err
	}
	archive, err := results.Open(cfg.Results.Driver, cfg.Results.DSN, results.WithLogger(logger))
	if err != nil {
		return err
	}
	defer func() { _ = archive.Close() }()

	if f.serve {
		return serve(ctx, cfg, httpapi.New(cfg, store, archive,
			httpapi.WithLogger(logger),
			httpapi.WithMetrics(m),
			httpapi.WithRateLimit(cfg.Server.Rate, cfg.Server.Burst),
		), logger)
	}

	if cfg.Outputs.Detail {
		rt.Sink = propeller.NewDetailedSink()
	}
	sys, err := cfg.System(store, rt)
	if err != nil {
		return err
	}
	outcomes := sys.Sweep(ctx, cfg.Sweep)
	runRec, err := archive.SaveRun(ctx, cfg.Name, outcomes)
	if err != nil {
		return err
	}
	summarize(logger, runRec, outcomes)
	if err := logLoads(logger, cfg.Aircraft(sys)); err != nil {
		return err
	}

	xlsx, pdf := pick(f.xlsx, cfg.Path(cfg.Outputs.XLSX)), pick(f.pdf, cfg.Path(cfg.Outputs.PDF))
	if xlsx != "" {
		var detail *propeller.Snapshot
		if rt.Sink != nil {
			snap := rt.Sink.Snapshot()
			detail = &snap
		}
		if err := writeFile(xlsx, func(fh *os.File) error { return export.WriteWorkbook(fh, outcomes, detail) }); err != nil {
			return err
		}
	}
	if pdf != "" {
		if err := writeFile(pdf, func(fh *os.File) error { return export.WriteReport(fh, runRec, outcomes) }); err != nil {
			return err
		}
	}

	return nil
}

func serve(ctx context.Context, cfg *config.Config, api *httpapi.Server, logger l.Wrapper) error {
	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           api.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.WithFields(l.StringField("addr", server.Addr)).Info("listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	logger.Info("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}

func summarize(logger l.Wrapper, run results.Run, outcomes []propulsion.Outcome) {
	for i, o := range outcomes {
		log := logger.WithFields(l.IntField("point", i+1), l.Float64Field("power", o.Solution.Power),
			l.Float64Field("spl", o.Solution.SPL))
		switch {
		case o.Err != nil:
			log.WithFields(l.ErrorField(o.Err)).Warn("point unsolved")
		case len(o.Failures) > 0:
			log.WithFields(l.IntField("failed", len(o.Failures))).Warn("point partly solved")
		default:
			log.Info("point trimmed")
		}
	}
	logger.WithFields(l.StringField("run", run.ID), l.IntField("points", run.Points),
		l.IntField("failed", run.Failed)).Info("sweep archived")
}

// logLoads reports the loads at the centre of gravity for the state the
// system was left in, which is the last point of the sweep.
func logLoads(logger l.Wrapper, plane *component.Component) error {
	force, err := component.ResolveForce(plane)
	if err != nil {
		return err
	}
	moment, err := component.ResolveMoment(plane)
	if err != nil {
		return err
	}
	logger.WithFields(
		l.Float64Field("fx", force[0]), l.Float64Field("fy", force[1]), l.Float64Field("fz", force[2]),
		l.Float64Field("mx", moment[0]), l.Float64Field("my", moment[1]), l.Float64Field("mz", moment[2]),
	).Info("last point loads at cg")

	return nil
}

func pick(flagValue, fileValue string) string {
	if flagValue != "" {
		return flagValue
	}

	return fileValue
}

func writeFile(path string, write func(*os.File) error) (retErr error) {
	fh, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if err := fh.Close(); err != nil && retErr == nil {
			retErr = err
		}
	}()

	return write(fh)
}
