// Command mapf runs a single MAPF solver against an instance file and
// writes a solver log, mirroring the CLI surface spec.md §6 describes.
package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/elektrokombinacija/mapf-solver/internal/instio"
	"github.com/elektrokombinacija/mapf-solver/internal/solver"
	"github.com/elektrokombinacija/mapf-solver/internal/unlabeled"
)

var CLI struct {
	Instance    string  `short:"i" required:"" help:"Instance file."`
	Output      string  `short:"o" help:"Output log path (.log text, .json structured)."`
	SolverName  string  `short:"s" name:"solver" default:"PIBT" help:"PIBT | CBS | ICBS | ECBS | PIBT_COMPLETE | IR | GoalSwapper | NaiveGoalSwapper."`
	Verbose     bool    `short:"v" help:"Verbose solver logging."`
	GenScenario bool    `short:"P" name:"gen-scenario" help:"Generate a random scenario instead of solving."`
	Seed        uint64  `default:"1" help:"RNG seed."`
	Unlabeled   bool    `help:"Treat the instance as unlabeled MAPF (goal pool, any agent may take any goal)."`
	W           float64 `name:"w" default:"1.5" help:"ECBS suboptimality bound."`
	Window      int     `default:"2" help:"IR modification-list window size."`
	UseICBS     bool    `name:"use-icbs" help:"IR: use ICBS_REFINE (MDD-based, prioritized conflicts) instead of CBS_REFINE as the window sub-solver."`
	NodeBudget  int     `default:"50000" help:"High-level node cap for CBS-family solvers."`
	MetricsAddr string  `help:"Address to expose Prometheus metrics on (empty disables)."`
}

var metrics = struct {
	nodesExpanded prometheus.Gauge
	solveSeconds  prometheus.Histogram
	soc           prometheus.Gauge
}{
	nodesExpanded: promauto.NewGauge(prometheus.GaugeOpts{
		Name: "mapf_solver_high_level_nodes_expanded",
		Help: "High-level search nodes expanded by the most recent solve.",
	}),
	solveSeconds: promauto.NewHistogram(prometheus.HistogramOpts{
		Name: "mapf_solver_solve_seconds",
		Help: "Wall-clock duration of each solve.",
	}),
	soc: promauto.NewGauge(prometheus.GaugeOpts{
		Name: "mapf_solver_sum_of_costs",
		Help: "Sum of costs of the most recently found plan.",
	}),
}

func main() {
	kong.Parse(&CLI,
		kong.Name("mapf"),
		kong.Description("Run a multi-agent pathfinding solver against a grid instance."),
		kong.UsageOnError(),
	)

	logger := log.NewWithOptions(os.Stderr, log.Options{})
	if CLI.Verbose {
		logger.SetLevel(log.InfoLevel)
	} else {
		logger.SetLevel(log.WarnLevel)
	}

	if CLI.MetricsAddr != "" {
		serveMetrics(CLI.MetricsAddr, logger)
	}

	inst, err := instio.LoadInstance(CLI.Instance)
	if err != nil {
		logger.Error("usage error", "err", err)
		os.Exit(1)
	}

	if CLI.GenScenario {
		g, err := instio.LoadMap(inst.MapFile)
		if err != nil {
			logger.Error("instance error", "err", err)
			os.Exit(1)
		}
		pairs, err := instio.GenerateScenario(g, inst.Agents, inst.Seed)
		if err != nil {
			logger.Error("instance error", "err", err)
			os.Exit(1)
		}
		out := CLI.Output
		if out == "" {
			out = CLI.Instance + ".scen"
		}
		if err := instio.WriteScenario(out, pairs); err != nil {
			logger.Error("usage error", "err", err)
			os.Exit(1)
		}
		return
	}

	p, err := inst.ToProblem(nil, CLI.Unlabeled)
	if err != nil {
		logger.Error("instance error", "err", err)
		os.Exit(1)
	}

	s := getSolver(CLI.SolverName, inst.MaxCompTime, logger)
	s.SetVerbose(CLI.Verbose)

	start := time.Now()
	solveErr := s.Solve(p)
	elapsed := time.Since(start)
	metrics.solveSeconds.Observe(elapsed.Seconds())
	if counted, ok := s.(interface{ ExploredNodes() int }); ok {
		metrics.nodesExpanded.Set(float64(counted.ExploredNodes()))
	}

	if solveErr != nil {
		logger.Warn("solve did not succeed", "solver", s.Name(), "err", solveErr)
	}

	plan := s.Solution()
	if s.Succeed() {
		if verr := plan.Validate(p); verr != nil {
			logger.Error("invalid result", "err", verr)
			os.Exit(1)
		}
	}

	info := instio.NewRunInfo()
	info.Instance = CLI.Instance
	info.Agents = p.N
	info.MapFile = inst.MapFile
	info.Solver = s.Name()
	info.Solved = s.Succeed()
	info.Starts = p.Starts
	info.Goals = p.Goals
	info.CompTimeMS = elapsed.Milliseconds()
	if s.Succeed() {
		goals := p.Goals
		if p.Unlabeled {
			// each agent's realized goal is where the plan ends it
			goals = plan[plan.Makespan()]
		}
		info.SOC = plan.SOC(goals)
		info.Makespan = plan.Makespan()
		info.Plan = plan
		metrics.soc.Set(float64(info.SOC))
	}

	if CLI.Output != "" {
		if err := instio.WriteLog(CLI.Output, info); err != nil {
			logger.Error("usage error", "err", err)
			os.Exit(1)
		}
	} else {
		fmt.Printf("solver=%s solved=%t soc=%d makespan=%d comp_time_ms=%d\n",
			info.Solver, info.Solved, info.SOC, info.Makespan, info.CompTimeMS)
	}
}

// getSolver dispatches by name, falling back to PIBT for an unrecognized
// name rather than failing outright.
func getSolver(name string, maxCompTimeMS int, logger *log.Logger) solver.Solver {
	seed := CLI.Seed
	budget := CLI.NodeBudget

	switch name {
	case "CBS":
		return solver.NewCBS(seed, maxCompTimeMS, budget)
	case "ICBS":
		return solver.NewICBS(seed, maxCompTimeMS, budget)
	case "ECBS":
		return solver.NewECBS(seed, maxCompTimeMS, budget, CLI.W)
	case "PIBT_COMPLETE":
		return solver.NewPIBTComplete(seed, maxCompTimeMS, 0)
	case "IR":
		return solver.NewIR(seed, maxCompTimeMS, CLI.Window, CLI.UseICBS)
	case "GoalSwapper":
		return unlabeled.NewGoalSwapper(seed, maxCompTimeMS)
	case "NaiveGoalSwapper":
		return unlabeled.NewNaiveGoalSwapper(seed, maxCompTimeMS)
	case "PIBT":
		return solver.NewPIBT(seed, maxCompTimeMS)
	default:
		logger.Warn("unknown solver name, falling back to PIBT", "requested", name)
		return solver.NewPIBT(seed, maxCompTimeMS)
	}
}

func serveMetrics(addr string, logger *log.Logger) {
	r := mux.NewRouter()
	r.Handle("/metrics", promhttp.Handler())
	go func() {
		if err := http.ListenAndServe(addr, r); err != nil {
			logger.Error("metrics server stopped", "err", err)
		}
	}()
}
