// Command huholdem is the solver driver: it parses a small-blind range, a
// big-blind range, and an optional board, samples representative hole-card
// pairs from each, runs an MCCFR solve per (hero-hand, villain-hand, board)
// triple, and aggregates the root-node strategies into per-starting-hand-
// category averages.
package main

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sort"
	"sync/atomic"
	"text/tabwriter"
	"time"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"golang.org/x/sync/errgroup"

	"github.com/riverbend/huholdem/internal/bettree"
	"github.com/riverbend/huholdem/internal/config"
	"github.com/riverbend/huholdem/internal/deck"
	"github.com/riverbend/huholdem/internal/errs"
	"github.com/riverbend/huholdem/internal/evaluator"
	"github.com/riverbend/huholdem/internal/rangeparser"
	"github.com/riverbend/huholdem/internal/randutil"
	"github.com/riverbend/huholdem/sdk/solver"
)

// defaultTablePaths is the search order for the rank-table file: the
// generator's own default output path first, then the bare filename in the
// working directory.
var defaultTablePaths = []string{"output/handranks.dat", "handranks.dat"}

var cli struct {
	SBRange string `arg:"" help:"Small-blind range notation, e.g. \"TT+,AKs\"."`
	BBRange string `arg:"" help:"Big-blind range notation."`
	Board   string `arg:"" optional:"" help:"Board as concatenated 2-char cards (0, 3, 4, or 5 cards), e.g. \"Ts7h2c\"."`

	Iterations int    `help:"CFR iterations per villain sample." default:"300"`
	Samples    int    `help:"Villain hands sampled per small-blind category." default:"20"`
	Seed       int64  `help:"RNG seed; required so aggregation is reproducible." required:""`
	Parallel   int    `help:"Worker count for concurrent solver instances (0 = GOMAXPROCS)." default:"0"`
	GUI        bool   `help:"Render the aggregated strategy as a styled terminal grid."`
	ConfigPath string `name:"config" help:"Optional HCL file overriding stakes/bet-sizing defaults."`
	Debug      bool   `help:"Enable debug-level logging."`
}

func main() {
	kong.Parse(&cli, kong.Description("Heads-up hold'em MCCFR solver driver."))

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "huholdem",
	})
	if cli.Debug {
		logger.SetLevel(log.DebugLevel)
	}
	if cli.GUI {
		logger.SetColorProfile(termenv.TrueColor)
	}

	if err := run(logger); err != nil {
		logger.Error("run failed", "err", err)
		os.Exit(1)
	}
}

func run(logger *log.Logger) error {
	tables, err := loadOrGenerateTables(logger)
	if err != nil {
		return err
	}

	stakes, err := config.Load(cli.ConfigPath)
	if err != nil {
		return err
	}

	var board []deck.Card
	if cli.Board != "" {
		board, err = deck.ParseCards(cli.Board)
		if err != nil {
			return fmt.Errorf("%w: board: %v", errs.ErrRangeParse, err)
		}
		if len(board) != 0 && len(board) != 3 && len(board) != 4 && len(board) != 5 {
			return fmt.Errorf("board must hold 0, 3, 4, or 5 cards, got %d", len(board))
		}
	}
	boardBits := deck.NewBitboard(board)

	sbRange := rangeparser.Parse(cli.SBRange)
	bbRange := rangeparser.Parse(cli.BBRange)
	if sbRange.Size() == 0 {
		return fmt.Errorf("%w: small-blind range %q matched no combos", errs.ErrRangeParse, cli.SBRange)
	}
	if bbRange.Size() == 0 {
		return fmt.Errorf("%w: big-blind range %q matched no combos", errs.ErrRangeParse, cli.BBRange)
	}

	categories := representativeCategories(sbRange, boardBits)
	if len(categories) == 0 {
		return fmt.Errorf("%w: every small-blind category conflicts with the board", errs.ErrCardConflict)
	}
	villainCombos := weightedCombos(bbRange)

	parallel := cli.Parallel
	if parallel <= 0 {
		parallel = runtime.GOMAXPROCS(0)
	}

	results := make([]categoryResult, len(categories))
	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(parallel)

	var program *tea.Program
	var programDone chan struct{}
	if cli.GUI {
		program = tea.NewProgram(newProgressModel(len(categories)))
		programDone = make(chan struct{})
		go func() {
			defer close(programDone)
			program.Run()
		}()
	}

	var completed atomic.Int64
	for i, cat := range categories {
		i, cat := i, cat
		g.Go(func() error {
			res, err := solveCategory(ctx, cat, villainCombos, board, boardBits, tables, stakes, cli.Seed, i)
			if err != nil {
				return err
			}
			results[i] = res
			if program != nil {
				done := completed.Add(1)
				program.Send(progressMsg{category: res.Category, done: int(done), total: len(categories)})
			}
			return nil
		})
	}
	solveErr := g.Wait()
	if program != nil {
		program.Send(doneMsg{})
		<-programDone
	}
	if solveErr != nil {
		return solveErr
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Weight != results[j].Weight {
			return results[i].Weight > results[j].Weight
		}
		return results[i].Category < results[j].Category
	})

	labels := actionLabels(stakes.BetSizesBB)
	if cli.GUI {
		renderGUI(labels, results)
	} else {
		renderPlain(tabwriter.NewWriter(os.Stdout, 0, 2, 2, ' ', 0), labels, results)
	}
	return nil
}

// loadOrGenerateTables searches defaultTablePaths for a rank-table file and
// loads the first one found; if none exists, it generates the tables
// in-process rather than failing.
func loadOrGenerateTables(logger *log.Logger) (*evaluator.RankTables, error) {
	for _, path := range defaultTablePaths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		tables, err := evaluator.LoadRankTables(path)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
		logger.Info("loaded rank tables", "path", path)
		return tables, nil
	}
	logger.Info("no rank table file found, generating in-process")
	return evaluator.GenerateRankTables(), nil
}

// solveCategory samples cli.Samples villain hands for cat, solves a fresh
// Solver instance per sample, and averages the root strategies. Each sample
// draws from its own RNG stream derived from (seed, category index, sample
// index), so the result for any one sample is independent both of how the
// bounded worker pool schedules the categories and of how many draws
// preceded it in the run.
func solveCategory(ctx context.Context, cat categoryEntry, villainCombos []weightedCombo, board []deck.Card, boardBits deck.Bitboard, tables *evaluator.RankTables, stakes config.Stakes, seed int64, index int) (categoryResult, error) {
	heroBits := deck.NewBitboard(cat.Hero[:])

	alphabet := 2*len(stakes.BetSizesBB) + 3
	sum := make([]float64, alphabet)
	drawn := 0

	for s := 0; s < cli.Samples; s++ {
		select {
		case <-ctx.Done():
			return categoryResult{}, ctx.Err()
		default:
		}

		rng := randutil.New(randutil.Stream(seed, uint64(index), uint64(s)))
		villain, ok := sampleVillain(rng, villainCombos, heroBits|boardBits)
		if !ok {
			continue
		}
		villainBits := deck.NewBitboard(villain[:])
		dealtBoard := completeFlop(board, heroBits|villainBits, rng)

		sv, err := solver.NewSolver(cat.Hero, villain, dealtBoard, tables)
		if err != nil {
			return categoryResult{}, err
		}
		sv.SetStakes(stakes.BigBlind, stakes.StartingPotBB, stakes.BetSizesBB)
		sv.UseCFRPlus = stakes.UseCFRPlus

		if err := sv.Solve(ctx, cli.Iterations); err != nil {
			return categoryResult{}, err
		}
		policy := sv.Policy()
		dist, err := policy.Query(bettree.Flop, 0, nil, policy.Root())
		if err != nil {
			return categoryResult{}, err
		}
		for i, p := range dist {
			sum[i] += p
		}
		drawn++
	}

	if drawn == 0 {
		return categoryResult{Category: cat.Category, Weight: cat.Weight, Samples: 0, Dist: sum}, nil
	}
	for i := range sum {
		sum[i] /= float64(drawn)
	}
	return categoryResult{Category: cat.Category, Weight: cat.Weight, Samples: drawn, Dist: sum}, nil
}
