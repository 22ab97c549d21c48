// cmd/paycheck4emu/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"gopkg.in/yaml.v3"

	"github.com/nanoptix/paycheck4emu/internal/config"
	"github.com/nanoptix/paycheck4emu/internal/diagnostics"
	"github.com/nanoptix/paycheck4emu/internal/engine"
	"github.com/nanoptix/paycheck4emu/internal/transport"
)

// buildVersion is a plain constant rather than a VCS-injected ldflags
// value — the teacher has no release pipeline to hook into, so this
// mirrors its own unversioned binary.
const buildVersion = "paycheck4emu dev"

func main() {
	dumpConfig := flag.Bool("dump-config", false, "print the normalized configuration as YAML and exit")
	showVersion := flag.Bool("version", false, "print the build version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(buildVersion)
		return
	}

	if flag.NArg() < 1 {
		log.Fatal("usage: paycheck4emu <config.yaml>")
	}
	cfgPath := flag.Arg(0)

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("config validation failed: %v", err)
	}
	config.Normalize(cfg)

	if *dumpConfig {
		out, err := yaml.Marshal(cfg)
		if err != nil {
			log.Fatalf("config marshal failed: %v", err)
		}
		os.Stdout.Write(out)
		return
	}

	sink := diagnostics.NewSlogSink(os.Stderr, logLevel(cfg.Emulator.Logging.Level), logFormat(cfg.Emulator.Logging.Format))

	adapter, closeAdapter, err := buildAdapter(cfg.Emulator.Transport)
	if err != nil {
		log.Fatalf("transport build failed: %v", err)
	}
	defer closeAdapter()

	e := engine.New(cfg, adapter, sink)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	e.Start(ctx)
	sink.Debugf("cmd", "engine started, device=%s unit=%d", cfg.Emulator.DeviceID, cfg.Emulator.UnitAddress)

	<-ctx.Done()
	e.Stop()
}

// buildAdapter selects the transport implementation per
// cfg.Emulator.Transport.Kind. "unix" is accepted by config validation
// as a development substitute for the real CDC-ACM device but has no
// adapter of its own yet — it reuses the serial adapter's line settings
// against a path that is, in practice, a symlinked pty.
func buildAdapter(t config.TransportConfig) (transport.Adapter, func(), error) {
	switch t.Kind {
	case "", "serial", "unix":
		device := t.Device
		if t.Kind == "unix" {
			device = t.SocketPath
		}
		a, err := transport.OpenSerial(transport.SerialConfig{
			Device:      device,
			BaudRate:    t.BaudRate,
			DataBits:    8,
			StopBits:    1,
			Parity:      "N",
			ReadTimeout: 100,
		})
		if err != nil {
			return nil, nil, err
		}
		return a, func() { a.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("cmd: unknown transport kind %q", t.Kind)
	}
}

func logLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func logFormat(format string) diagnostics.Format {
	if format == "json" {
		return diagnostics.FormatJSON
	}
	return diagnostics.FormatText
}
