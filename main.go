package main

import (
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/twoqbf/incdet/internal/cli"
	"github.com/twoqbf/incdet/internal/qbf"
	"github.com/twoqbf/incdet/internal/qdimacs"
)

// Process exit codes mirroring original_source/src/lib.rs's SolverResult
// convention.
const (
	exitSatisfiable   = 10
	exitUnsatisfiable = 20
	exitUnknown       = 30
)

// solverBuilder adapts a qdimacs.Instance stream directly into a qbf.Solver,
// implementing qdimacs.Builder.
type solverBuilder struct {
	solver *qbf.Solver
}

func (b *solverBuilder) SetNumVars(n int) {
	for i := 0; i < n; i++ {
		b.solver.AddVariable(qbf.Existential)
	}
}

func (b *solverBuilder) AddQuantifierBlock(universal bool, vars []int) {
	q := qbf.Existential
	if universal {
		q = qbf.Universal
	}
	for _, n := range vars {
		v, err := qbf.VarFromDIMACS(n)
		if err != nil {
			continue
		}
		b.solver.Quantify(v, q)
	}
}

func (b *solverBuilder) AddClause(lits []int) {
	ls := make([]qbf.Lit, 0, len(lits))
	for _, n := range lits {
		l, err := qbf.LitFromDIMACS(n)
		if err != nil {
			continue
		}
		ls = append(ls, l)
	}
	b.solver.AddClause(ls)
}

func run(cfg *cli.Config) (qbf.Result, error) {
	logger := logrus.StandardLogger()
	if cfg.Verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	solver := qbf.NewSolver(qbf.DefaultOptions(), logger)
	b := &solverBuilder{solver: solver}

	if err := qdimacs.Load(cfg.InstanceFile, cfg.Gzipped, b); err != nil {
		return qbf.Unknown, fmt.Errorf("could not parse instance: %w", err)
	}

	fmt.Printf("c variables:  %d\n", solver.NumVars())

	t := time.Now()
	status, err := solver.Solve()
	elapsed := time.Since(t)
	if err != nil {
		return qbf.Unknown, fmt.Errorf("solve failed: %w", err)
	}

	stats := solver.Stats()
	fmt.Printf("c time (sec): %f\n", elapsed.Seconds())
	fmt.Printf("c decisions:  %d\n", stats.Decisions)
	fmt.Printf("c conflicts:  %d (%.2f /sec)\n", stats.Conflicts, float64(stats.Conflicts)/elapsed.Seconds())
	fmt.Printf("c conf. rate: %.4f (EMA)\n", stats.ConflictRate)
	fmt.Printf("c clauses:    %d\n", stats.ClausesAdded)
	fmt.Printf("c status:     %s\n", status.String())

	return status, nil
}

func main() {
	cfg, err := cli.Parse(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	if cfg.CPUProfile {
		f, err := os.Create("cpuprof")
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	status, err := run(cfg)
	if err != nil {
		log.Fatal(err)
	}

	if cfg.MemProfile {
		f, err := os.Create("memprof")
		if err != nil {
			log.Fatal(err)
		}
		pprof.WriteHeapProfile(f)
		f.Close()
	}

	switch status {
	case qbf.Satisfiable:
		os.Exit(exitSatisfiable)
	case qbf.Unsatisfiable:
		os.Exit(exitUnsatisfiable)
	default:
		os.Exit(exitUnknown)
	}
}
