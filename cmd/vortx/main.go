// Command vortx runs a swarm optimization against one of the catalog
// benchmark functions, from flags or a YAML scenario file, and renders
// progress on the terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/copyleftdev/VORTX/internal/logging"
	"github.com/copyleftdev/VORTX/internal/optimization"
	"github.com/copyleftdev/VORTX/internal/optimization/objectives"
	"github.com/copyleftdev/VORTX/internal/optimization/swarm"
	"github.com/copyleftdev/VORTX/internal/scenario"
)

func main() {
	var (
		scenarioPath = flag.String("scenario", "", "YAML scenario file; flags below are ignored when set")
		objective    = flag.String("objective", "sphere", "benchmark objective: "+strings.Join(objectives.Names(), ", "))
		dim          = flag.Int("dim", scenario.DefaultDim, "problem dimension")
		swarmSize    = flag.Int("swarm", 0, "swarm size (0 = heuristic default)")
		maxSteps     = flag.Int("steps", 10000, "step budget")
		goal         = flag.Float64("goal", swarm.DefaultGoal, "error threshold for early stop")
		topology     = flag.String("topology", "ring", "neighborhood topology: global, ring, random")
		inertia      = flag.String("inertia", "linear", "inertia schedule: constant, linear")
		boundary     = flag.String("boundary", "clamp", "boundary policy: clamp, periodic")
		seed         = flag.Int64("seed", 0, "random seed (0 = time-based)")
		reportEvery  = flag.Int("report", 1000, "progress bar interval in steps (0 = silent)")
		logLevel     = flag.String("log-level", "warn", "log level")
	)
	flag.Parse()

	logger, err := logging.New(logging.Config{Level: *logLevel, Format: "console", Output: "stderr"})
	if err != nil {
		fatal(err)
	}
	defer logger.Sync()

	sc := &scenario.Scenario{
		Objective:   *objective,
		Dim:         *dim,
		SwarmSize:   *swarmSize,
		MaxSteps:    *maxSteps,
		Goal:        goal,
		Topology:    *topology,
		Inertia:     *inertia,
		Boundary:    *boundary,
		ReportEvery: *reportEvery,
	}
	if *seed != 0 {
		sc.Seed = seed
	}
	if *scenarioPath != "" {
		sc, err = scenario.Load(*scenarioPath)
		if err != nil {
			fatal(err)
		}
	}

	cfg, bench, err := sc.Build()
	if err != nil {
		fatal(err)
	}

	bar := &progressBar{}
	opts := append(sc.Options(),
		swarm.WithLogger(logger),
		swarm.WithObserver(bar.update),
	)
	opt, err := swarm.New(cfg, bench.Eval, opts...)
	if err != nil {
		fatal(err)
	}

	fmt.Printf("objective=%s dim=%d particles=%d steps=%d goal=%.1e\n",
		bench.Name, cfg.Dim, cfg.SwarmSize, cfg.MaxSteps, cfg.Goal)
	fmt.Printf("topology=%s inertia=%s boundary=%s c1/c2=%.3f/%.3f\n",
		cfg.Topology, cfg.Inertia, cfg.Boundary, cfg.Cognitive, cfg.Social)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	result, err := opt.Optimize(ctx)
	bar.finish()
	if err != nil {
		fatal(err)
	}

	printResult(result, time.Since(start))
}

func printResult(result *optimization.Result, elapsed time.Duration) {
	outcome := "step budget exhausted"
	if result.GoalReached {
		outcome = "goal reached"
	}
	fmt.Printf("%s after %d steps (%d evaluations, %s)\n",
		outcome, result.Steps, result.Evaluations, elapsed.Round(time.Millisecond))
	fmt.Printf("best error    : %.12e\n", result.Best.Value)

	show := len(result.Best.Position)
	suffix := "]"
	if show > 10 {
		show = 10
		suffix = ", ...]"
	}
	parts := make([]string, show)
	for i := 0; i < show; i++ {
		parts[i] = fmt.Sprintf("%.6f", result.Best.Position[i])
	}
	fmt.Printf("best position : [%s%s\n", strings.Join(parts, ", "), suffix)
}

// progressBar redraws a single terminal line per report.
type progressBar struct {
	used bool
}

const barWidth = 28

func (p *progressBar) update(step, maxSteps int, inertia, bestError float64) {
	frac := 0.0
	if maxSteps > 0 {
		frac = float64(step) / float64(maxSteps)
	}
	if frac > 1 {
		frac = 1
	}
	filled := int(frac * barWidth)

	var b strings.Builder
	b.WriteString("\r[")
	for i := 0; i < barWidth; i++ {
		if i < filled {
			b.WriteByte('#')
		} else {
			b.WriteByte('-')
		}
	}
	fmt.Fprintf(&b, "] %3d%% | step %d/%d | w=%.2f | best=%.5e",
		int(frac*100), step, maxSteps, inertia, bestError)
	fmt.Print(b.String())
	p.used = true
}

// finish drops to a fresh line so the result is not glued to the bar.
func (p *progressBar) finish() {
	if p.used {
		fmt.Println()
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
