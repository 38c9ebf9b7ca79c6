// Copyright 2025 Contriboss
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command pubgrub is a scenario-driven runner around the pubgrub solver:
// it loads a JSON scenario file, builds an in-memory DependencyProvider
// from it, and either solves it, validates its shape, or benchmarks it.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/contriboss/pubgrub-go"
	"github.com/contriboss/pubgrub-go/internal/provider"
	"github.com/contriboss/pubgrub-go/internal/rootprovider"
	"github.com/contriboss/pubgrub-go/internal/scenario"
)

// config mirrors the optional TOML file's shape; flags override it.
type config struct {
	MaxSteps               int    `toml:"max_steps"`
	TrackIncompatibilities bool   `toml:"track_incompatibilities"`
	LogLevel               string `toml:"log_level"`
}

func loadConfig(path string) (config, error) {
	var cfg config
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func applyLogLevel(level string) {
	switch level {
	case "debug":
		logrus.SetLevel(logrus.DebugLevel)
	case "warn":
		logrus.SetLevel(logrus.WarnLevel)
	case "error":
		logrus.SetLevel(logrus.ErrorLevel)
	default:
		logrus.SetLevel(logrus.InfoLevel)
	}
}

func reporterFor(name string) pubgrub.Reporter {
	if name == "collapsed" {
		return &pubgrub.CollapsedReporter{}
	}
	return &pubgrub.DefaultReporter{}
}

func buildProvider(path string) (pubgrub.Package, pubgrub.DependencyProvider, error) {
	sc, err := scenario.LoadFile(path)
	if err != nil {
		return pubgrub.Package{}, nil, err
	}

	mem, err := sc.BuildProvider()
	if err != nil {
		return pubgrub.Package{}, nil, err
	}

	if len(sc.Packages) == 0 {
		return pubgrub.Package{}, nil, fmt.Errorf("scenario %q declares no packages", sc.Name)
	}

	rootDeps, err := scenarioRootDeps(sc)
	if err != nil {
		return pubgrub.Package{}, nil, err
	}
	root := rootprovider.New(rootDeps...)

	combined := provider.Combined{root, provider.NewCached(mem)}
	return root.Root(), combined, nil
}

// scenarioRootDeps determines what the synthetic root package depends on.
// A scenario that declares a package literally named "root" is solved from
// that package's dependency entries; otherwise every declared package is
// required at any version.
func scenarioRootDeps(sc *scenario.Scenario) ([]pubgrub.Dependency, error) {
	for _, p := range sc.Packages {
		if p.Name != "root" {
			continue
		}
		if len(p.Versions) == 0 {
			return nil, fmt.Errorf("scenario %q: package \"root\" lists no versions", sc.Name)
		}
		deps := make([]pubgrub.Dependency, 0)
		for _, d := range sc.Dependencies {
			if d.Package != "root" {
				continue
			}
			set, err := pubgrub.ParseVersionSet(d.Constraint)
			if err != nil {
				return nil, fmt.Errorf("root dependency on %s: %w", d.Dependency, err)
			}
			deps = append(deps, pubgrub.Dependency{Package: pubgrub.NewPackage(d.Dependency), Set: set})
		}
		return deps, nil
	}

	deps := make([]pubgrub.Dependency, 0, len(sc.Packages))
	for _, p := range sc.Packages {
		deps = append(deps, pubgrub.Dependency{
			Package: pubgrub.NewPackage(p.Name),
			Set:     pubgrub.FullVersionSet(),
		})
	}
	return deps, nil
}

func solverOptions(cfg config, maxSteps int, track bool) []pubgrub.SolverOption {
	opts := []pubgrub.SolverOption{}
	if maxSteps != 0 {
		opts = append(opts, pubgrub.WithMaxSteps(maxSteps))
	} else if cfg.MaxSteps != 0 {
		opts = append(opts, pubgrub.WithMaxSteps(cfg.MaxSteps))
	}
	opts = append(opts, pubgrub.WithIncompatibilityTracking(track || cfg.TrackIncompatibilities))
	opts = append(opts, pubgrub.WithLogger(slog.Default()))
	return opts
}

func main() {
	app := &cli.App{
		Name:  "pubgrub",
		Usage: "run the pubgrub version solver against a scenario file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "optional TOML config file"},
			&cli.IntFlag{Name: "max-steps", Usage: "override the solver's iteration cap"},
			&cli.BoolFlag{Name: "track-incompatibilities", Usage: "collect learned clauses for detailed failure reports"},
			&cli.StringFlag{Name: "log-level", Usage: "debug, info, warn, or error (default info)"},
			&cli.StringFlag{Name: "reporter", Value: "tree", Usage: "tree or collapsed"},
		},
		Commands: []*cli.Command{
			solveCommand(),
			validateCommand(),
			benchCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		logrus.Errorf("pubgrub: %v", err)
		os.Exit(1)
	}
}

func solveCommand() *cli.Command {
	return &cli.Command{
		Name:      "solve",
		Usage:     "solve a scenario and print the resulting version assignment",
		ArgsUsage: "<scenario.json>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit("expected exactly one scenario file argument", 2)
			}

			cfg, err := loadConfig(c.String("config"))
			if err != nil {
				return err
			}
			applyLogLevel(coalesce(c.String("log-level"), cfg.LogLevel, "info"))

			root, dp, err := buildProvider(c.Args().First())
			if err != nil {
				return err
			}

			solver := pubgrub.NewSolverWithOptions(dp, solverOptions(cfg, c.Int("max-steps"), c.Bool("track-incompatibilities"))...)
			solution, err := solver.Solve(root, pubgrub.RootVersion())
			if err != nil {
				var noSolution *pubgrub.NoSolutionError
				if errors.As(err, &noSolution) {
					noSolution = noSolution.WithReporter(reporterFor(c.String("reporter")))
					logrus.Warnf("no solution: %s", noSolution.Error())
					return cli.Exit(noSolution.Error(), 1)
				}
				return err
			}

			logrus.Infof("solved %d packages", len(solution))
			for pkg := range solution.All() {
				fmt.Printf("%s %s\n", pkg.Name.Value(), pkg.Version)
			}
			return nil
		},
	}
}

func validateCommand() *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Usage:     "parse and structurally validate a scenario file without solving",
		ArgsUsage: "<scenario.json>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit("expected exactly one scenario file argument", 2)
			}
			sc, err := scenario.LoadFile(c.Args().First())
			if err != nil {
				return err
			}
			if _, err := sc.BuildProvider(); err != nil {
				return err
			}
			logrus.Infof("scenario %q is valid: %d packages, %d dependency edges", sc.Name, len(sc.Packages), len(sc.Dependencies))
			return nil
		},
	}
}

func benchCommand() *cli.Command {
	return &cli.Command{
		Name:      "bench",
		Usage:     "run the solve repeatedly and report timing",
		ArgsUsage: "<scenario.json>",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "runs", Value: 10, Usage: "number of solve iterations"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit("expected exactly one scenario file argument", 2)
			}

			cfg, err := loadConfig(c.String("config"))
			if err != nil {
				return err
			}
			applyLogLevel(coalesce(c.String("log-level"), cfg.LogLevel, "info"))

			root, dp, err := buildProvider(c.Args().First())
			if err != nil {
				return err
			}

			runs := c.Int("runs")
			var total time.Duration
			for i := 0; i < runs; i++ {
				runID := uuid.New().String()
				solver := pubgrub.NewSolverWithOptions(dp, solverOptions(cfg, c.Int("max-steps"), c.Bool("track-incompatibilities"))...)

				start := time.Now()
				_, err := solver.Solve(root, pubgrub.RootVersion())
				elapsed := time.Since(start)
				total += elapsed

				if err != nil {
					logrus.Warnf("run %s: no solution (%s)", runID, elapsed)
					continue
				}
				logrus.Debugf("run %s: solved in %s", runID, elapsed)
			}

			if runs > 0 {
				fmt.Printf("%d runs, average %s\n", runs, total/time.Duration(runs))
			}
			return nil
		},
	}
}

func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
