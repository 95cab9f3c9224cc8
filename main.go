package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"sqlitebench/benchmark"
	"sqlitebench/benchmark/insert"
	"sqlitebench/benchmark/update"
	"sqlitebench/report"
	"sqlitebench/rowgen"
	"sqlitebench/store"
)

const defaultRows = 10_000_000

type BenchmarkArgs struct {
	Rows      int          `yaml:"rows"`
	Store     store.Config `yaml:",inline"`
	Scenarios []string     `yaml:"scenarios"`
	Pause     bool         `yaml:"pause"`
}

// Prepare zerolog
func setupLogging(disableLog bool, level string) {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	var zlevel zerolog.Level
	if disableLog {
		zlevel = zerolog.Disabled
	} else if level == "info" {
		zlevel = zerolog.InfoLevel
	} else {
		zlevel = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(zlevel)
}

// Returns a BenchmarkArgs struct with the defaults, overlaid with the
// configFile when one is given.
func buildArgs(configFile string) *BenchmarkArgs {
	args := &BenchmarkArgs{
		Rows: defaultRows,
		Store: store.Config{
			Driver: store.DefaultDriver,
			Path:   store.DefaultPath,
		},
		Pause: true,
	}

	if configFile == "" {
		return args
	}

	data, err := os.ReadFile(configFile)
	if err != nil {
		log.Fatal(err)
	}
	if err := yaml.Unmarshal(data, args); err != nil {
		log.Fatal(err)
	}

	return args
}

// Returns every scenario in report order: the insert strategies, then the
// update strategies.
func registry() []benchmark.Scenario {
	return append(insert.Scenarios(), update.Scenarios()...)
}

func waitForKeypress() {
	fmt.Println("PRESS ENTER TO EXIT")
	_, _ = bufio.NewReader(os.Stdin).ReadBytes('\n')
}

func main() {
	disableLog := flag.Bool("no-log", false, "Disables the log")
	configFile := flag.String("conf", "", "Benchmark config file")
	logLevel := flag.String("level", "debug", "Log level (info|debug)")
	noPause := flag.Bool("no-pause", false, "Exit without waiting for a keypress")
	flag.Parse()

	setupLogging(*disableLog, *logLevel)
	args := buildArgs(*configFile)

	scenarios := registry()
	selected, err := benchmark.Select(scenarios, args.Scenarios)
	if err != nil {
		log.Fatal(err)
	}

	runID := uuid.New().String()
	zlog.Info().Str("run", runID).Str("driver", args.Store.Driver).
		Str("path", args.Store.Path).Int("rows", args.Rows).Msg("Run started")

	fmt.Println("SQLite Performance Demo")
	fmt.Printf("Testing with %s rows.\n\n", humanize.Comma(int64(args.Rows)))

	gen := rowgen.New(time.Now().UnixNano())
	runner := benchmark.NewRunner(args.Store, args.Rows, gen)

	results, err := runner.Run(scenarios, selected)
	if err != nil {
		log.Fatalf("SQLite Error - %v", err)
	}

	report.Print(os.Stdout, results)

	fmt.Println("\nTests completed.")
	zlog.Info().Str("run", runID).Msg("Run ended")

	if args.Pause && !*noPause {
		waitForKeypress()
	}
}
