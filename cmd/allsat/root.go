// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package main

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ttoda/allsat"
	"github.com/ttoda/allsat/dimacs"
)

// options holds every run-time flag of the allsat binary, surfacing the
// solver's construction-time configuration matrix as command-line flags
// instead of the build-time tags (NONBLOCKING, BT|BJ|CBJ|BJ+CBJ, DLEVEL,
// LAZY, CUTSETCACHE, REFRESH, REDUCTION, GMP) spec.md §6 lists.
type options struct {
	nmax      int
	cache     string
	backtrack string
	uip       string
	blocking  bool
	lazy      bool
	reduce    bool
	gmp       bool
	debug     bool
}

func newRootCmd() *cobra.Command {
	o := options{}

	cmd := &cobra.Command{
		Use:          "allsat <input.cnf> [output]",
		Short:        "Enumerate every satisfying assignment of a CNF formula as an OBDD",
		SilenceUsage: true,
		Args:         cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(args)
		},
	}

	cmd.Flags().IntVarP(&o.nmax, "n", "n", 0, "refresh the OBDD once it exceeds this many nodes (non-blocking mode only, 0 disables refresh)")
	cmd.Flags().StringVar(&o.cache, "cache", "separator", "subspace-equivalence fingerprint family: separator|cutset")
	cmd.Flags().StringVar(&o.backtrack, "backtrack", "cbj", "non-blocking backtrack policy: bt|bj|cbj|bjcbj")
	cmd.Flags().StringVar(&o.uip, "uip", "decision", "1-UIP granularity: decision|sublevel")
	cmd.Flags().BoolVar(&o.blocking, "blocking", false, "use blocking mode (learn a blocking clause per model) instead of non-blocking chronological flip")
	cmd.Flags().BoolVar(&o.lazy, "lazy", false, "probe the cache lazily (at the end of the unassigned prefix) instead of eagerly")
	cmd.Flags().BoolVar(&o.reduce, "reduce", false, "run the optional reduced-BDD post-pass and report its size")
	cmd.Flags().BoolVar(&o.gmp, "gmp", false, "report the exact big-integer count instead of the saturating one")
	cmd.Flags().BoolVar(&o.debug, "debug", false, "use debug log level")

	cmd.AddCommand(newVerifyCmd())
	return cmd
}

// run parses the CNF, solves it, and writes the model decomposition to the
// positional output argument (or stdout), matching
// original_source/bdd_minisat_all-1.0.2/main.c's <input> [output] contract.
func (o *options) run(args []string) error {
	log := logrus.New()
	if o.debug {
		log.SetLevel(logrus.DebugLevel)
	}

	in, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer in.Close()

	out := os.Stdout
	if len(args) == 2 {
		f, err := os.Create(args[1])
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	opts, err := o.solverOptions(out)
	if err != nil {
		return err
	}

	s, header, err := dimacs.NewSolver(in, opts...)
	if err != nil {
		if errors.Is(err, allsat.ErrEmptyClause) {
			log.WithError(err).Warn("trivially unsatisfiable at parse time")
			os.Exit(20)
		}
		return err
	}

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigc
		s.Interrupt()
	}()

	result, err := s.Solve()
	if err != nil {
		return err
	}

	if _, err := s.OBDD().Decompose(out); err != nil {
		return err
	}

	fields := logrus.Fields{
		"variables": header.Vars,
		"clauses":   header.Clauses,
		"interrupted": result == allsat.ResultInterrupted,
	}
	if o.gmp {
		fields["models"] = s.TotalSolutions().String()
	} else {
		total := s.TotalSolutions()
		models := total.String()
		if total.Cmp(big.NewInt(math.MaxInt64)) >= 0 {
			models = fmt.Sprintf("%d+", int64(math.MaxInt64))
		}
		fields["models"] = models
	}
	stats := s.Stats()
	fields["conflicts"] = stats.Conflicts
	fields["decisions"] = stats.Decisions
	fields["obdd_nodes"] = stats.OBDDNodes

	if result == allsat.ResultInterrupted {
		log.WithFields(fields).Warn("search interrupted")
	} else {
		log.WithFields(fields).Info("search complete")
	}

	if o.reduce {
		if err := runReduce(log, s); err != nil {
			return err
		}
	}
	return nil
}

func (o *options) solverOptions(refreshSink *os.File) ([]allsat.Option, error) {
	var opts []allsat.Option
	if o.blocking {
		opts = append(opts, allsat.Blocking())
	} else {
		opts = append(opts, allsat.NonBlocking())
	}
	if o.lazy {
		opts = append(opts, allsat.Lazy())
	}
	if o.nmax > 0 {
		opts = append(opts, allsat.WithMaxNodes(o.nmax), allsat.WithRefreshSink(refreshSink))
	}

	switch o.cache {
	case "separator":
		opts = append(opts, allsat.WithCache(allsat.CacheSeparator))
	case "cutset":
		opts = append(opts, allsat.WithCache(allsat.CacheCutset))
	default:
		return nil, fmt.Errorf("unknown --cache value %q", o.cache)
	}

	switch o.backtrack {
	case "bt":
		opts = append(opts, allsat.WithBacktrack(allsat.BT))
	case "bj":
		opts = append(opts, allsat.WithBacktrack(allsat.BJ))
	case "cbj":
		opts = append(opts, allsat.WithBacktrack(allsat.CBJ))
	case "bjcbj":
		opts = append(opts, allsat.WithBacktrack(allsat.BJCBJ))
	default:
		return nil, fmt.Errorf("unknown --backtrack value %q", o.backtrack)
	}

	switch o.uip {
	case "decision":
		opts = append(opts, allsat.WithUIP(allsat.DecisionLevel))
	case "sublevel":
		opts = append(opts, allsat.WithUIP(allsat.Sublevel))
	default:
		return nil, fmt.Errorf("unknown --uip value %q", o.uip)
	}

	return opts, nil
}
