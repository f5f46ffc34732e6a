// Command golf runs the code-golf language core standalone: evaluate a
// source file against a literal input, run it against a challenge's test
// battery, or drop into a line-oriented REPL.
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/funvibe/golf/internal/catalogue"
	"github.com/funvibe/golf/internal/checker"
	"github.com/funvibe/golf/internal/harness"
	"github.com/funvibe/golf/internal/store"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "golf",
		Short: "A standalone runner for the code-golf language core",
	}
	root.AddCommand(newRunCmd(), newTestCmd(), newReplCmd())
	return root
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <file> [input]",
		Short: "Parse, type-check, and evaluate a source file, optionally applied to an input",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				log.Fatalf("golf run: %v", err)
			}
			source := string(src)
			if len(args) == 2 {
				source = "(" + source + ") " + args[1]
			}

			expr, err := harness.Parse(source)
			if err != nil {
				fmt.Println("ParseError:", err)
				os.Exit(1)
			}
			if err := harness.Infer(expr); err != nil {
				fmt.Println("TypeError:", err)
				os.Exit(1)
			}
			value, err := harness.Evaluate(expr, harness.DefaultLimits())
			if err != nil {
				fmt.Println("RuntimeError:", err)
				os.Exit(1)
			}
			fmt.Println(harness.Print(value))
			return nil
		},
	}
}

func newTestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "test <file> <cases.json>",
		Short: "Run a source file against a catalogue challenge's test battery",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTestCommand(args[0], args[1])
		},
	}
}

func runTestCommand(sourcePath, catalogueID string) error {
	src, err := os.ReadFile(sourcePath)
	if err != nil {
		log.Fatalf("golf test: %v", err)
	}

	challenges, err := catalogue.Load(catalogueID)
	if err != nil {
		return err
	}
	id, name := catalogueID, filepath.Base(catalogueID)
	challenge, ok := catalogue.FindByName(challenges, name)
	if !ok {
		if len(challenges) == 0 {
			return fmt.Errorf("golf test: no challenges in %s", id)
		}
		challenge = challenges[0]
	}

	runID := uuid.New()
	source := string(src)
	results := harness.RunTests(source, challenge.ToHarnessCases(), harness.DefaultLimits())

	fmt.Printf("run %s: %s\n", runID, challenge.Name)
	passed := 0
	for _, r := range results {
		status := "FAIL"
		if r.Passed {
			status = "PASS"
			passed++
		}
		fmt.Printf("[%s] %s\n", status, r.Description)
		if !r.Passed {
			if r.Error != "" {
				fmt.Printf("       error: %s\n", r.Error)
			} else {
				fmt.Printf("       expected %q, got %q\n", r.Expected, r.Actual)
			}
		}
	}

	chars := harness.CountChars(source)
	fmt.Println(describeAgainstPar(chars, challenge.Par))
	fmt.Printf("%d/%d passed\n", passed, len(results))

	if passed == len(results) {
		if err := recordSolution(challenge, source, chars); err != nil {
			log.Printf("golf test: could not record solution: %v", err)
		}
	}
	return nil
}

func recordSolution(challenge catalogue.Challenge, source string, chars int) error {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	dbDir := filepath.Join(home, ".code_golf_game")
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return err
	}
	st, err := store.Open(filepath.Join(dbDir, "solutions.db"))
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.SaveSolution(store.Solution{
		ChallengeID: challenge.ID,
		Code:        source,
		CharCount:   chars,
		Passed:      true,
		Timestamp:   time.Now().Unix(),
	}); err != nil {
		return err
	}
	best, err := st.GetPersonalBest(challenge.ID)
	if err != nil || best == nil {
		return err
	}
	return st.UpdateBeatPar(challenge.ID, best.CharCount <= challenge.Par)
}

func describeAgainstPar(chars, par int) string {
	count := humanize.Comma(int64(chars))
	delta := chars - par
	switch {
	case delta == 0:
		return fmt.Sprintf("%s characters, exactly at par (%d)", count, par)
	case delta > 0:
		return fmt.Sprintf("%s characters, %s over par (%d)", count, humanize.Comma(int64(delta)), par)
	default:
		return fmt.Sprintf("%s characters, %s under par (%d)", count, humanize.Comma(int64(-delta)), par)
	}
}

func newReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Evaluate one expression per line against a persistent environment",
		RunE: func(cmd *cobra.Command, args []string) error {
			runRepl()
			return nil
		},
	}
}

// runRepl evaluates top-level `let name = value` bindings persistently and
// every other line as an expression under all bindings entered so far,
// mirroring ui/repl.rs.
func runRepl() {
	showPrompt := isatty.IsTerminal(os.Stdin.Fd())
	scanner := bufio.NewScanner(os.Stdin)

	var bindings []string // accumulated `let name = value in` prefixes

	for {
		if showPrompt {
			fmt.Print("golf> ")
		}
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if name, value, ok := strings.Cut(line, "="); ok && strings.HasPrefix(line, "let ") {
			name = strings.TrimSpace(strings.TrimPrefix(name, "let"))
			bindings = append(bindings, fmt.Sprintf("let %s = %s in ", name, strings.TrimSpace(value)))
			continue
		}

		source := strings.Join(bindings, "") + line
		expr, err := harness.Parse(source)
		if err != nil {
			fmt.Println("ParseError:", err)
			continue
		}
		c := checker.New()
		if _, err := c.InferWithEnv(expr, c.BuiltinEnv()); err != nil {
			fmt.Println("TypeError:", err)
			continue
		}
		value, err := harness.Evaluate(expr, harness.DefaultLimits())
		if err != nil {
			fmt.Println("RuntimeError:", err)
			continue
		}
		fmt.Println(harness.Print(value))
	}
}
