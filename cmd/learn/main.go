// Command learn implements the CLI surface of spec.md §6: load a DTA from a
// JSON file, run the active learner against an oracle-knows-the-DTA teacher,
// and print the learned automaton plus query counts and wall time.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/katalvlaran/dtalearn/dtafile"
	"github.com/katalvlaran/dtalearn/learner"
	"github.com/katalvlaran/dtalearn/teacher"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: learn <path-to-dta-json>")
		os.Exit(1)
	}
	if err := run(os.Args[1]); err != nil {
		color.Red("✗ %s", err)
		os.Exit(1)
	}
}

func run(path string) error {
	f, err := dtafile.Load(path)
	if err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	target, err := dtafile.Import(f)
	if err != nil {
		return fmt.Errorf("importing %s: %w", path, err)
	}

	teach := teacher.FromDTA(target)

	start := time.Now()
	hyp, stats, err := learner.Learn(target.Clocks, target.Alphabet, teach)
	elapsed := time.Since(start)
	if err != nil {
		return fmt.Errorf("learning %s: %w", path, err)
	}

	fmt.Print(hyp)
	fmt.Printf("membership queries:  %d\n", stats.MembershipQueries)
	fmt.Printf("equivalence queries: %d\n", stats.EquivalenceQueries)
	fmt.Printf("rounds:              %d\n", stats.Rounds)
	fmt.Printf("wall time:           %s\n", elapsed)
	color.Green("✓ learned a DTA equivalent to %s", path)
	return nil
}
