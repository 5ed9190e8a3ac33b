// Command gen-ranktables enumerates all 7462 distinct 5-card hand strength
// classes and writes the resulting lookup tables to disk, so a solver
// process can load them in milliseconds instead of regenerating them on
// every startup.
package main

import (
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/riverbend/huholdem/internal/evaluator"
)

var cli struct {
	Out string `help:"Output path for the generated rank table file." default:"output/handranks.dat"`
}

func main() {
	kong.Parse(&cli, kong.Description("Generate the 7-card hand rank lookup tables."))

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "gen-ranktables",
	})

	start := time.Now()
	logger.Info("enumerating five-card hand classes")
	tables := evaluator.GenerateRankTables()
	logger.Info("enumeration complete", "elapsed", time.Since(start))

	if err := os.MkdirAll(dirOf(cli.Out), 0o755); err != nil {
		logger.Fatal("create output directory", "path", cli.Out, "err", err)
	}
	if err := tables.WriteFile(cli.Out); err != nil {
		logger.Fatal("write rank tables", "path", cli.Out, "err", err)
	}

	logger.Info("wrote rank tables", "path", cli.Out)
	for _, row := range []struct {
		category string
		count    int
	}{
		{"straight flush", 40},
		{"four of a kind", 624},
		{"full house", 3744},
		{"flush", 5108},
		{"straight", 10200},
		{"three of a kind", 54912},
		{"two pair", 123552},
		{"one pair", 1098240},
		{"high card", 1302540},
	} {
		logger.Info("expected 5-card combo count", "category", row.category, "count", row.count)
	}
}

func dirOf(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[:i]
		}
	}
	return "."
}
