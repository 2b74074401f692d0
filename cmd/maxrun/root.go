package main

import (
	"errors"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"svw.info/maxrun/internal/config"
	"svw.info/maxrun/internal/domain"
	"svw.info/maxrun/internal/generator"
	"svw.info/maxrun/internal/infrastructure/storage"
	"svw.info/maxrun/internal/inspect"
	"svw.info/maxrun/internal/metrics"
	"svw.info/maxrun/internal/solver"
	"svw.info/maxrun/internal/usecase"
	"svw.info/maxrun/internal/validator"
)

var (
	configPath  string
	levelStr    string
	persistPath string
)

var rootCmd = &cobra.Command{
	Use:           "maxrun",
	Short:         "Generate and check tile grids with bounded runs",
	SilenceUsage:  true,
	SilenceErrors: false,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config describing topology, tiles and constraints")
	rootCmd.PersistentFlags().StringVar(&levelStr, "log-level", "info", "debug|info|warn|error")
	rootCmd.PersistentFlags().StringVar(&persistPath, "persist-path", "./data", "save directory")
	rootCmd.AddCommand(serveCmd, generateCmd, validateCmd, inspectCmd)
}

func newLogger() *slog.Logger {
	lvl := slog.LevelInfo
	switch strings.ToLower(levelStr) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}

func loadConfig() (*config.Config, error) {
	if configPath == "" {
		return nil, errors.New("--config is required")
	}
	return config.Load(configPath)
}

// app holds the wired providers shared by the subcommands.
type app struct {
	logger  *slog.Logger
	metrics *metrics.Collector
	gen     *generator.SeededGenerator
	uc      *usecase.Service
}

// Wire providers → use cases
func newApp(logger *slog.Logger) *app {
	mc := metrics.NewCollector("maxrun")
	s := solver.NewBacktrackingSolver(
		solver.WithLogger(logger),
		solver.WithConstraintWrapper(mc.Constraint),
	)
	g := generator.NewSeededGenerator(s)
	v := validator.New()
	st := storage.NewFS(persistPath)
	in := inspect.NewBanPreview()
	return &app{
		logger:  logger,
		metrics: mc,
		gen:     g,
		uc:      usecase.NewService(s, g, v, in, st),
	}
}

// render draws a sample one z-layer at a time using each tile's first letter.
func render(s *domain.Sample) string {
	var b strings.Builder
	t := s.Topology
	for z := 0; z < t.Depth; z++ {
		if z > 0 {
			b.WriteByte('\n')
		}
		for y := 0; y < t.Height; y++ {
			for x := 0; x < t.Width; x++ {
				tile := s.At(domain.Point{X: x, Y: y, Z: z})
				if tile == "" {
					b.WriteByte('.')
					continue
				}
				b.WriteByte(tile[0])
			}
			b.WriteByte('\n')
		}
	}
	return b.String()
}
