package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"svw.info/maxrun/internal/domain"
)

var (
	genSeed     int64
	genCount    int
	genParallel int
	genSave     bool
	genJSON     bool
	genTimeout  time.Duration
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate grids that satisfy the configured constraints",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger := newLogger()
		a := newApp(logger)

		seed := genSeed
		if !cmd.Flags().Changed("seed") && cfg.Seed != 0 {
			seed = cfg.Seed
		}
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		seeds := make([]int64, max(genCount, 1))
		for i := range seeds {
			seeds[i] = seed + int64(i)
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), genTimeout)
		defer cancel()
		samples, st, err := a.gen.GenerateBatch(ctx, seeds, cfg.Template(), genParallel)
		if err != nil {
			return fmt.Errorf("generate: %w", err)
		}
		logger.Info("generated",
			"count", len(samples),
			"nodes", st.Nodes,
			"checks", st.Checks,
			"dur", st.Duration.Round(time.Millisecond),
		)
		for _, s := range samples {
			if genSave {
				if err := a.uc.Save(ctx, s); err != nil {
					return fmt.Errorf("save: %w", err)
				}
				logger.Info("saved", "id", s.ID, "seed", s.Seed)
			}
			if err := printSample(cmd, s); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	generateCmd.Flags().Int64Var(&genSeed, "seed", 0, "first seed (0 = config seed or time based)")
	generateCmd.Flags().IntVarP(&genCount, "count", "n", 1, "number of grids, using consecutive seeds")
	generateCmd.Flags().IntVar(&genParallel, "parallel", 4, "maximum concurrent generations")
	generateCmd.Flags().BoolVar(&genSave, "save", false, "persist generated grids")
	generateCmd.Flags().BoolVar(&genJSON, "json", false, "print grids as JSON")
	generateCmd.Flags().DurationVar(&genTimeout, "timeout", time.Minute, "overall time limit")
}

func printSample(cmd *cobra.Command, s *domain.Sample) error {
	out := cmd.OutOrStdout()
	if genJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	}
	_, err := fmt.Fprintf(out, "seed %d\n%s\n", s.Seed, render(s))
	return err
}

// readSample loads a sample from a JSON file; rules from --config replace
// the sample's own when given.
func readSample(path string) (*domain.Sample, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s domain.Sample
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.Topology = s.Topology.Normalize()
	if configPath != "" {
		cfg, err := loadConfig()
		if err != nil {
			return nil, err
		}
		s.Rules = cfg.Constraints
	}
	return &s, nil
}
