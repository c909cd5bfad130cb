// Package config centralizes application configuration. All tunables are
// sourced from command-line flags with environment-variable fallbacks
// (12-factor friendly); flags are defined first so `-help` shows every
// knob and its default.
//
// Typical usage:
//
//	cfg := config.Load() // reads os.Args and os.Environ
//
// For tests, prefer LoadFromArgs to keep them hermetic:
//
//	fs := flag.NewFlagSet("test", flag.ContinueOnError)
//	getenv := func(k string) string { return testEnv[k] }
//	cfg := config.LoadFromArgs(fs, getenv, []string{"-output=out.xlsx"})
package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
)

// Config holds all process configuration derived from flags and environment
// variables. All fields are plain values so the struct can be copied and
// used across goroutines after construction.
type Config struct {
	// Inputs.
	ObligationsXLSX string // obligation export from the dispatch application
	MileageXLSX     string // mileage export from the fleet portal ("" skips the stage)
	FleetXLSX       string // secondary fleet snapshot for the sink fallback ("" = none)
	PriorReport     string // previous report read for note recovery

	// Output.
	Output string // report workbook path; replaced atomically

	// SpecialSPZ optionally overrides the built-in non-truck vehicle set
	// (comma-separated identifiers).
	SpecialSPZ string

	// Time-accuracy gate for the mileage stage. An empty URL disables the
	// gate and with it the mileage index.
	TimeURL          string
	TimeToleranceSec int

	// Mileage hand-off sink.
	SinkDriver string // "none", "postgres", or "sqlite"
	SinkDSN    string

	// Metrics.
	MetricsBackend string // "none" or "pushgateway"
	PushgatewayURL string
	Job            string

	Verbose bool
}

// LoadFromArgs builds a Config by defining flags on fs, wiring each flag to
// an environment-variable fallback via getenv, and then parsing args.
//
// Precedence:
//  1. Environment values seed each flag's default.
//  2. Explicit CLI flags (in args) override the seeded defaults.
func LoadFromArgs(fs *flag.FlagSet, getenv func(string) string, args []string) *Config {
	cfg := &Config{}

	envOr := func(k, d string) string {
		if v := getenv(k); v != "" {
			return v
		}
		return d
	}
	intEnvOr := func(k string, d int) int {
		if v := getenv(k); v != "" {
			if i, err := strconv.Atoi(v); err == nil {
				return i
			}
		}
		return d
	}
	boolEnvOr := func(k string, d bool) bool {
		switch strings.ToLower(getenv(k)) {
		case "1", "true", "yes", "on":
			return true
		case "0", "false", "no", "off":
			return false
		}
		return d
	}

	// Inputs and output.
	fs.StringVar(&cfg.ObligationsXLSX, "obligations", envOr("OBLIGATIONS_XLSX", "src/doprava.xlsx"), "Path to the obligation export")
	fs.StringVar(&cfg.MileageXLSX, "mileage", envOr("MILEAGE_XLSX", "src/vozidla_km.xlsx"), "Path to the portal mileage export (empty skips the stage)")
	fs.StringVar(&cfg.FleetXLSX, "fleet", envOr("FLEET_XLSX", ""), "Path to the secondary fleet snapshot for the sink fallback")
	fs.StringVar(&cfg.PriorReport, "prior", envOr("PRIOR_REPORT", "kontroly.xlsx"), "Previous report to recover notes from")
	fs.StringVar(&cfg.Output, "output", envOr("OUTPUT_XLSX", "kontroly.xlsx"), "Report workbook to write")

	fs.StringVar(&cfg.SpecialSPZ, "special_spz", envOr("SPECIAL_SPZ", ""), "Comma-separated non-truck vehicle set override")

	// Time gate.
	fs.StringVar(&cfg.TimeURL, "time_url", getenv("TIME_API_URL"), "Time-zone API URL for the clock-accuracy gate (empty disables the mileage index)")
	fs.IntVar(&cfg.TimeToleranceSec, "time_tolerance", intEnvOr("TIME_TOLERANCE_SEC", 60), "Accepted clock drift in seconds")

	// Sink.
	fs.StringVar(&cfg.SinkDriver, "sink_driver", envOr("SINK_DRIVER", "none"), "Mileage hand-off sink: 'none', 'postgres' or 'sqlite'")
	fs.StringVar(&cfg.SinkDSN, "sink_dsn", getenv("SINK_DSN"), "Sink DSN (postgres) or database path (sqlite)")

	// Metrics.
	fs.StringVar(&cfg.MetricsBackend, "metrics-backend", envOr("METRICS_BACKEND", "none"), "Metrics backend to use (e.g. pushgateway, none)")
	fs.StringVar(&cfg.PushgatewayURL, "pushgateway-url", envOr("PUSHGATEWAY_URL", "http://localhost:9091"), "Pushgateway base URL")
	fs.StringVar(&cfg.Job, "job", envOr("JOB_NAME", "kontrola"), "Job name used for metrics grouping")

	fs.BoolVar(&cfg.Verbose, "v", boolEnvOr("VERBOSE", false), "Enable verbose logs")

	if args == nil {
		args = []string{}
	}
	_ = fs.Parse(args)
	return cfg
}

// Load is the production entry point: flags on flag.CommandLine, env via
// os.Getenv, args from os.Args.
func Load() *Config {
	return LoadFromArgs(flag.CommandLine, os.Getenv, os.Args[1:])
}

// SpecialSPZList splits the override into identifiers; nil when unset so
// callers fall back to the built-in set.
func (c *Config) SpecialSPZList() []string {
	if strings.TrimSpace(c.SpecialSPZ) == "" {
		return nil
	}
	parts := strings.Split(c.SpecialSPZ, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
