// Command normalize is a batch-mode demonstration harness for the
// normalization engine: it reads a batch of input records and an FX
// table from a file, runs them through internal/normalize, and writes
// the normalized records and run report back out. The scheduler is
// confined to this binary — internal/normalize itself never starts a
// cron loop or owns a clock beyond what callers pass in.
package main

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/aristath/indicator-normalize/internal/codec"
	"github.com/aristath/indicator-normalize/internal/config"
	"github.com/aristath/indicator-normalize/internal/domain"
	"github.com/aristath/indicator-normalize/internal/normalize"
)

// batchInput is the on-disk shape consumed by this command: a list of
// raw records alongside the FX table they should be converted through.
type batchInput struct {
	Records []domain.InputRecord `json:"records" msgpack:"records"`
	FXTable *domain.FXTable      `json:"fx_table,omitempty" msgpack:"fx_table,omitempty"`
}

// batchOutput is written back out after a run.
type batchOutput struct {
	Records []domain.NormalizedRecord  `json:"records" msgpack:"records"`
	Report  domain.NormalizationReport `json:"report" msgpack:"report"`
}

func main() {
	inPath := flag.String("in", "", "path to the input batch file (JSON or MessagePack)")
	outPath := flag.String("out", "", "path to write the normalized output (defaults to stdout)")
	workers := flag.Int("workers", 0, "number of parallel workers (0 = default)")
	every := flag.String("every", "", "cron schedule to re-run on (e.g. \"@every 5m\"); runs once if empty")
	flag.Parse()

	log := newLogger(os.Getenv("LOG_LEVEL"))
	zlog.Logger = log

	if *inPath == "" {
		log.Fatal().Msg("missing required -in flag")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	n := normalize.New(*workers)

	run := func() {
		if err := runOnce(log, n, cfg, *inPath, *outPath); err != nil {
			log.Error().Err(err).Msg("normalization run failed")
		}
	}

	if *every == "" {
		run()
		return
	}

	c := cron.New()
	if _, err := c.AddFunc(*every, run); err != nil {
		log.Fatal().Err(err).Str("schedule", *every).Msg("invalid -every schedule")
	}
	log.Info().Str("schedule", *every).Msg("starting scheduled normalization runs")
	c.Run()
}

func runOnce(log zerolog.Logger, n *normalize.Normalizer, cfg domain.Config, inPath, outPath string) error {
	log = log.With().Str("input", inPath).Logger()
	format := codec.DetectFormat(strings.TrimPrefix(filepath.Ext(inPath), "."))

	raw, err := os.ReadFile(inPath)
	if err != nil {
		return err
	}

	var input batchInput
	if err := codec.Unmarshal(format, raw, &input); err != nil {
		return err
	}

	records, report, err := n.NormalizeBatch(input.Records, cfg, input.FXTable)
	if err != nil {
		log.Warn().Err(err).Msg("batch completed with failures")
	}

	out := batchOutput{Records: records, Report: report}
	outFormat := format
	if outPath != "" {
		outFormat = codec.DetectFormat(strings.TrimPrefix(filepath.Ext(outPath), "."))
	}
	encoded, encodeErr := codec.Marshal(outFormat, out)
	if encodeErr != nil {
		return encodeErr
	}

	if outPath == "" {
		_, writeErr := os.Stdout.Write(encoded)
		return writeErr
	}
	return os.WriteFile(outPath, encoded, 0644)
}

// newLogger builds the console logger this binary runs with. levelStr is
// LOG_LEVEL and falls back to info on empty or unrecognized values.
func newLogger(levelStr string) zerolog.Logger {
	level, err := zerolog.ParseLevel(levelStr)
	if err != nil || levelStr == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}
	return zerolog.New(output).With().Timestamp().Caller().Logger()
}
