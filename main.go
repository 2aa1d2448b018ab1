package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Nydauron/reefscout/catalog"
	"github.com/Nydauron/reefscout/config"
	"github.com/Nydauron/reefscout/export"
	"github.com/Nydauron/reefscout/parsers"
	"github.com/Nydauron/reefscout/record"
	"github.com/Nydauron/reefscout/stages"
	"github.com/Nydauron/reefscout/ui"
	"github.com/Nydauron/reefscout/writers"
)

const (
	configFlag   = "config"
	catalogFlag  = "catalog"
	strategyFlag = "strategy"
	undoFlag     = "undo"
	scheduleFlag = "schedule"
	outputFlag   = "output"
	qrFlag       = "qr"
)

var build string
var semanticVersion = "v0.1.0-dev" + build

// loadConfig reads the config file and applies the global flag overrides.
func loadConfig(cCtx *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(cCtx.String(configFlag))
	if err != nil {
		return nil, err
	}
	if cCtx.IsSet(catalogFlag) {
		cfg.Catalog = cCtx.String(catalogFlag)
	}
	if cCtx.IsSet(strategyFlag) {
		cfg.Strategy = cCtx.String(strategyFlag)
	}
	if cCtx.IsSet(undoFlag) {
		cfg.Undo = cCtx.String(undoFlag)
	}
	if cCtx.IsSet(scheduleFlag) {
		cfg.Schedule = cCtx.String(scheduleFlag)
	}
	return cfg, cfg.Validate()
}

func loadSchedule(path string) (*parsers.Schedule, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open schedule: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return parsers.ParseScheduleCSV(f)
	case ".html", ".htm":
		return parsers.ParseScheduleHTML(f)
	default:
		return nil, fmt.Errorf("schedule %s: expected a .csv or .html file", path)
	}
}

var errStdoutInUse = errors.New(`scout draws the wizard on stdout, so -o needs a file path instead of "-"`)

// payloadSink appends every exported payload to location as one line.
func payloadSink(location string, logger *zap.Logger) (func(string), func() error, error) {
	if location == "" {
		return nil, func() error { return nil }, nil
	}
	if location == writers.Stdout {
		return nil, nil, errStdoutInUse
	}
	out := writers.NewLazyWriteCloser(func() (io.WriteCloser, error) {
		return os.OpenFile(location, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	})
	write := func(payload string) {
		if _, err := fmt.Fprintln(out, payload); err != nil {
			logger.Error("failed to write payload", zap.String("output", location), zap.Error(err))
		}
	}
	return write, out.Close, nil
}

func scoutHandle(cCtx *cli.Context) error {
	cfg, err := loadConfig(cCtx)
	if err != nil {
		return err
	}
	logger, err := cfg.Logger()
	if err != nil {
		return err
	}
	defer logger.Sync()
	logger = logger.With(zap.String("session", uuid.NewString()))

	strategy, _ := export.ParseStrategy(cfg.Strategy)
	undo, _ := stages.ParseUndoPolicy(cfg.Undo)
	rings, _ := cfg.Rings()
	qr, _ := cfg.QRCode()

	opts := stages.Options{
		Image:   cfg.Image(),
		Rings:   rings,
		Undo:    undo,
		Encoder: export.Encoder{Strategy: strategy},
	}
	schedule, err := loadSchedule(cfg.Schedule)
	if err != nil {
		return err
	}
	if schedule != nil {
		opts.Schedule = schedule
		logger.Info("match schedule loaded", zap.String("path", cfg.Schedule), zap.Int("matches", len(schedule.Matches)))
	}

	exported, closeOutput, err := payloadSink(cCtx.String(outputFlag), logger)
	if err != nil {
		return err
	}
	defer closeOutput()

	app := ui.NewApp(ui.Options{
		Loader:   catalog.Loader{Path: cfg.Catalog},
		Wizard:   opts,
		QR:       qr,
		Logger:   logger,
		Exported: exported,
	})
	defer app.Close()

	logger.Info("scouting session started",
		zap.String("strategy", strategy.String()),
		zap.String("undo", undo.String()))
	_, err = tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}

// readRecord decodes a match record in YAML or JSON over the defaults.
func readRecord(path string) (record.MatchRecord, error) {
	r := record.Defaults()
	f, err := os.Open(path)
	if err != nil {
		return r, err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&r); err != nil {
		return r, fmt.Errorf("decode record %s: %w", path, err)
	}
	if err := r.Validate(); err != nil {
		return r, fmt.Errorf("record %s: %w", path, err)
	}
	return r, nil
}

func encodeHandle(cCtx *cli.Context) error {
	if cCtx.NArg() != 1 {
		return fmt.Errorf("expected one record file, got %d arguments", cCtx.NArg())
	}
	cfg, err := loadConfig(cCtx)
	if err != nil {
		return err
	}
	logger, err := cfg.Logger("stderr")
	if err != nil {
		return err
	}
	defer logger.Sync()

	r, err := readRecord(cCtx.Args().First())
	if err != nil {
		return err
	}
	strategy, _ := export.ParseStrategy(cfg.Strategy)
	payload := export.Encoder{Strategy: strategy}.Encode(r).String()

	if path := cCtx.String(qrFlag); path != "" {
		qr, _ := cfg.QRCode()
		png, err := qr.PNG(payload)
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, png, 0644); err != nil {
			return fmt.Errorf("write QR code: %w", err)
		}
		logger.Info("QR code written", zap.String("path", path), zap.Int("payload_bytes", len(payload)))
	}

	out := writers.Open(cCtx.String(outputFlag))
	if _, err := fmt.Fprintln(out, payload); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func catalogHandle(cCtx *cli.Context) error {
	cfg, err := loadConfig(cCtx)
	if err != nil {
		return err
	}
	logger, err := cfg.Logger("stderr")
	if err != nil {
		return err
	}
	defer logger.Sync()

	c, err := catalog.Loader{Path: cfg.Catalog}.Load()
	if err != nil {
		return err
	}
	fields := make([]zap.Field, 0, len(catalog.Stages)+1)
	fields = append(fields, zap.String("title", c.Title))
	for _, stage := range catalog.Stages {
		fields = append(fields, zap.Int(string(stage), len(c.Fields(stage))))
	}
	logger.Info("field catalog is valid", fields...)

	out := writers.Open(cCtx.String(outputFlag))
	yamlEncoder := yaml.NewEncoder(out)
	yamlEncoder.SetIndent(2)
	if err := yamlEncoder.Encode(c); err != nil {
		out.Close()
		return fmt.Errorf("encoding catalog to YAML failed: %w", err)
	}
	if err := yamlEncoder.Close(); err != nil {
		out.Close()
		return fmt.Errorf("encoding catalog to YAML failed on close: %w", err)
	}
	return out.Close()
}

func main() {
	outputOption := &cli.StringFlag{
		Name:    outputFlag,
		Aliases: []string{"o"},
		Usage:   "Where to write the result. Can be a file path or \"-\" (for stdout).",
		Value:   writers.Stdout,
	}
	app := &cli.App{
		Name:    "reefscout",
		Usage:   "Match scouting for REEFSCAPE: record a robot's match and hand it off as a QR payload",
		Version: semanticVersion,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    configFlag,
				Aliases: []string{"c"},
				Usage:   "Path to a YAML config file",
				Value:   "reefscout.yaml",
			},
			&cli.StringFlag{
				Name:  catalogFlag,
				Usage: "Path to a field catalog (YAML or JSON). Defaults to the built-in REEFSCAPE catalog.",
			},
			&cli.StringFlag{
				Name:  strategyFlag,
				Usage: "Sequence encoding: aggregated or verbatim",
			},
			&cli.StringFlag{
				Name:  undoFlag,
				Usage: "Undo policy: longest or recent",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "scout",
				Usage: "Run the interactive scouting wizard",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  scheduleFlag,
						Usage: "CSV or HTML match schedule used to fill in team numbers",
					},
					&cli.StringFlag{
						Name:    outputFlag,
						Aliases: []string{"o"},
						Usage:   "Append every exported payload to this file",
					},
				},
				Action: scoutHandle,
			},
			{
				Name:      "encode",
				Usage:     "Encode a match record file as an export payload",
				ArgsUsage: "<record.yaml|record.json>",
				Flags: []cli.Flag{
					outputOption,
					&cli.StringFlag{
						Name:  qrFlag,
						Usage: "Also write the payload as a QR code PNG to this path",
					},
				},
				Action: encodeHandle,
			},
			{
				Name:   "catalog",
				Usage:  "Validate a field catalog and print it as YAML",
				Flags:  []cli.Flag{outputOption},
				Action: catalogHandle,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
