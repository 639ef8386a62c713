// cmd/smartlogger/main.go
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	console "github.com/phsym/console-slog"

	"github.com/tamzrod/ec-smartlogger/internal/calibrate"
	"github.com/tamzrod/ec-smartlogger/internal/channel"
	chmodbus "github.com/tamzrod/ec-smartlogger/internal/channel/modbus"
	"github.com/tamzrod/ec-smartlogger/internal/config"
	"github.com/tamzrod/ec-smartlogger/internal/diag"
	"github.com/tamzrod/ec-smartlogger/internal/discover"
	"github.com/tamzrod/ec-smartlogger/internal/sampler"
	"github.com/tamzrod/ec-smartlogger/internal/sink"
	"github.com/tamzrod/ec-smartlogger/internal/verify"
)

func main() {
	cfgPath := flag.String("config", "", "path to YAML config (optional)")
	modeFlag := flag.Int("mode", -1, "calibration mode 0-3 (overrides config)")
	flag.Parse()

	log := slog.New(console.NewHandler(os.Stderr, &console.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(log)

	// --------------------
	// Load + validate config
	// --------------------

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Error("config load failed", "err", err)
		os.Exit(1)
	}

	config.Normalize(cfg)

	if *modeFlag >= 0 {
		cfg.Logger.CalibrationMode = *modeFlag
	}

	if err := config.Validate(cfg); err != nil {
		log.Error("config validation failed", "err", err)
		os.Exit(1)
	}

	lc := cfg.Logger

	mode, err := calibrate.ParseMode(lc.CalibrationMode)
	if err != nil {
		log.Error("bad calibration mode", "err", err)
		os.Exit(1)
	}

	// --------------------
	// Discovery
	// --------------------

	// Probe connections are short-lived; the winning port is reopened
	// below with the session timeout.
	probeFactory := func(device string) (channel.Client, error) {
		return chmodbus.New(chmodbus.Config{
			Device:   device,
			BaudRate: lc.Link.Baud,
			DataBits: lc.Link.DataBits,
			Parity:   lc.Link.Parity,
			StopBits: lc.Link.StopBits,
			SlaveID:  lc.SlaveID,
			Timeout:  time.Duration(lc.ProbeTimeoutMs) * time.Millisecond,
		})
	}

	port, err := discover.Discover(log, discover.Candidates(lc.Ports), probeFactory)
	if err != nil {
		log.Error("discovery failed",
			"err", err, "slave_id", lc.SlaveID, "baud", lc.Link.Baud)
		os.Exit(1)
	}

	// --------------------
	// Session
	// --------------------

	session, err := chmodbus.New(chmodbus.Config{
		Device:   port,
		BaudRate: lc.Link.Baud,
		DataBits: lc.Link.DataBits,
		Parity:   lc.Link.Parity,
		StopBits: lc.Link.StopBits,
		SlaveID:  lc.SlaveID,
		Timeout:  time.Duration(lc.SessionTimeoutMs) * time.Millisecond,
	})
	if err != nil {
		log.Error("session open failed", "port", port, "err", err)
		os.Exit(1)
	}
	defer session.Close()

	log.Info("connected", "port", port, "slave_id", lc.SlaveID)

	// --------------------
	// Startup diagnostics
	// --------------------

	diag.Log(log, diag.Snapshot(session))

	// --------------------
	// Calibration
	// --------------------

	// A failed sequence is reported and the run continues on whatever
	// configuration the sensor already had.
	seq := calibrate.NewSequencer(verify.New(session, log), log)
	if err := seq.Execute(mode); err != nil {
		log.Warn("calibration failed, continuing with sensor defaults", "err", err)
	}

	// --------------------
	// Sinks
	// --------------------

	csvSink, err := sink.NewCSVSink(lc.CSVPath)
	if err != nil {
		log.Error("csv sink failed", "path", lc.CSVPath, "err", err)
		os.Exit(1)
	}
	defer csvSink.Close()

	reports := sink.NewReportSink(log, lc.StandardValue, lc.Tolerance)

	log.Info("logging started", "csv", lc.CSVPath, "interval_ms", lc.SampleIntervalMs)

	// --------------------
	// Sampling loop
	// --------------------

	smp, err := sampler.New(
		sampler.Config{Interval: time.Duration(lc.SampleIntervalMs) * time.Millisecond},
		session,
		log,
	)
	if err != nil {
		log.Error("sampler build failed", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := make(chan sampler.Record)
	go smp.Run(ctx, out)

	for {
		select {
		case <-ctx.Done():
			log.Info("shutting down")
			return

		case rec := <-out:
			if err := csvSink.Append(rec); err != nil {
				log.Warn("csv append failed", "err", err)
			}
			reports.Emit(rec)
		}
	}
}
