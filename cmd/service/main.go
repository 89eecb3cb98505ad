package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"golang.org/x/sys/unix"

	"github.com/egandro/variance-heatmap/pkg/config"
	"github.com/egandro/variance-heatmap/pkg/dataset"
	"github.com/egandro/variance-heatmap/pkg/logger"
	"github.com/egandro/variance-heatmap/pkg/service"
)

func main() {
	configFile := flag.String("config", config.ConstantConfigFilename, "Path to config file")
	hostFlag := flag.String("host", "", "HTTP service host")
	portFlag := flag.Int("port", 0, "HTTP service port")
	dataFileFlag := flag.String("data-file", "", "Read the dataset from a local JSON file")
	dataURLFlag := flag.String("data-url", "", "Fetch the dataset from this URL")
	logFileFlag := flag.String("log-file", "", "Path to log file")
	logLevelFlag := flag.String("log-level", "", "Log level (debug, info, warn, error)")
	insecureFlag := flag.Bool("insecure-allow-remote", false, "Allow binding to non-localhost addresses")
	toStdout := flag.Bool("stdout", false, "Log to stdout")

	flag.Parse()

	cfg := config.Load(*configFile)

	// Override config with flags if provided
	if *hostFlag != "" {
		cfg.ServiceHost = *hostFlag
	}
	if *portFlag != 0 {
		cfg.ServicePort = *portFlag
	}
	if *dataFileFlag != "" {
		cfg.DataFile = *dataFileFlag
	}
	if *dataURLFlag != "" {
		cfg.DataURL = *dataURLFlag
		cfg.DataFile = ""
	}
	if *logFileFlag != "" {
		cfg.LogFile = *logFileFlag
	}
	if *logLevelFlag != "" {
		cfg.LogLevel = *logLevelFlag
	}
	if *insecureFlag {
		cfg.InsecureAllowRemote = true
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var logF *os.File
	var output io.Writer = os.Stdout

	if !*toStdout {
		f, err := openLogFile(cfg.LogFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file %s: %v. Logging to stdout.\n", cfg.LogFile, err)
		} else {
			logF = f
			output = f
		}
	}

	// Configure slog level
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v, defaulting to INFO\n", err)
	}

	slog.SetDefault(slog.New(logger.NewHandler(output, level)))

	// ramp was checked by Validate
	ramp, _ := cfg.ColorRamp()
	source := dataset.NewSource(cfg.DataFile, cfg.DataURL, cfg.CacheTTL, cfg.FetchTimeout)
	s := service.New(cfg.ServiceHost, cfg.ServicePort, source, ramp, cfg.Title)

	go func() {
		if err := s.Start(); err != nil && err != http.ErrServerClosed {
			slog.Error("Service failed", "error", err)
			os.Exit(1)
		}
	}()

	// Warm the cache so the first request does not wait on the fetch.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.FetchTimeout)
		defer cancel()
		if _, err := source.Dataset(ctx); err != nil {
			slog.Warn("Initial dataset load failed", "error", err)
		}
	}()

	// Handle signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, unix.SIGHUP, unix.SIGINT, unix.SIGTERM)

	for sig := range sigChan {
		switch sig {
		case unix.SIGHUP:
			if logF != nil {
				newF, err := openLogFile(cfg.LogFile)
				if err == nil {
					_ = logF.Close()
					logF = newF

					// Re-create slog handler with new file
					slog.SetDefault(slog.New(logger.NewHandler(logF, level)))

					slog.Info("Log file rotated")
				} else {
					slog.Error("Failed to rotate log", "error", err)
				}
			}
		case unix.SIGINT, unix.SIGTERM:
			slog.Info("Shutting down service...")
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := s.Shutdown(ctx); err != nil {
				slog.Error("Shutdown error", "error", err)
			}
			return
		}
	}
}

func openLogFile(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
}
