// Command exathctl is a thin host around pkg/session: run it with no
// arguments for an interactive REPL, or with a file path to run a
// script of expressions, one per line.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/wildfunctions/exath/internal/exlog"
	"github.com/wildfunctions/exath/pkg/angle"
	"github.com/wildfunctions/exath/pkg/session"
)

func main() {
	angleFlag := flag.String("angle", "rad", "angle mode for trig functions: deg, rad, or grad")
	verbose := flag.Bool("v", false, "log debug detail for each evaluated line")
	flag.Parse()

	mode, err := angle.Parse(*angleFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	cfg := exlog.DefaultConfig()
	if *verbose {
		cfg.Level = slog.LevelDebug
	}
	exlog.Init(cfg)

	sess := session.New(mode)

	if flag.NArg() > 0 {
		path := flag.Arg(0)
		content, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", path, err)
			os.Exit(1)
		}
		runLines(sess, strings.Split(string(content), "\n"), true)
		return
	}

	runREPL(sess)
}

func runREPL(sess *session.Session) {
	fmt.Println("exathctl — interactive session (type 'exit' to quit)")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(">> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "exit" || line == "quit" {
			break
		}
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		evalAndPrint(sess, line, true)
	}
}

func runLines(sess *session.Session, lines []string, verbose bool) {
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		exlog.Debug("evaluating line", "num", i+1, "text", trimmed)
		evalAndPrint(sess, trimmed, verbose)
	}
}

func evalAndPrint(sess *session.Session, line string, showInput bool) {
	isFnDef := looksLikeFunctionDef(line)
	isAssignment := !isFnDef && looksLikeAssignment(line)

	result, err := sess.Eval(line)
	if err != nil {
		fmt.Fprintf(os.Stderr, "  Error: %v\n", err)
		return
	}

	switch {
	case isFnDef:
		if showInput {
			fmt.Printf("  defined: %s\n", line)
		}
	case isAssignment:
		name := strings.TrimSpace(strings.SplitN(line, "=", 2)[0])
		fmt.Printf("  %s = %s\n", name, formatComplex(result))
	default:
		fmt.Printf("  %s\n", formatComplex(result))
	}
}

func formatComplex(z complex128) string {
	re, im := real(z), imag(z)
	if math.Abs(im) < 1e-12 {
		return formatFloat(re)
	}
	if im >= 0 {
		return fmt.Sprintf("%s + %si", formatFloat(re), formatFloat(im))
	}
	return fmt.Sprintf("%s - %si", formatFloat(re), formatFloat(-im))
}

// formatFloat prints near-integers without a trailing ".0", matching
// the compact style a calculator REPL uses.
func formatFloat(f float64) string {
	rounded := math.Round(f)
	tol := math.Max(math.Abs(f), 1.0) * 1e-12
	if math.Abs(f-rounded) < tol && math.Abs(f) < 1e15 {
		return strconv.FormatFloat(rounded, 'f', 0, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// looksLikeFunctionDef is a display-only heuristic ("name(params) ="):
// the real decision is made by pkg/ast.ParseLine inside Session.Eval,
// this just decides how to label the result that comes back.
func looksLikeFunctionDef(line string) bool {
	lp := strings.Index(line, "(")
	if lp < 0 {
		return false
	}
	rp := strings.Index(line[lp:], ")")
	if rp < 0 {
		return false
	}
	after := strings.TrimSpace(line[lp+rp+1:])
	return strings.HasPrefix(after, "=") && !strings.HasPrefix(after, "==")
}

func looksLikeAssignment(line string) bool {
	for i := 0; i < len(line); i++ {
		if line[i] != '=' {
			continue
		}
		var prev, next byte
		if i > 0 {
			prev = line[i-1]
		}
		if i+1 < len(line) {
			next = line[i+1]
		}
		if prev == '!' || prev == '<' || prev == '>' || next == '=' {
			continue
		}
		lhs := strings.TrimSpace(line[:i])
		if lhs == "" {
			return false
		}
		first := lhs[0]
		if !isAlpha(first) {
			return false
		}
		for j := 0; j < len(lhs); j++ {
			if !isAlphaNum(lhs[j]) {
				return false
			}
		}
		return true
	}
	return false
}

func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isAlphaNum(b byte) bool {
	return isAlpha(b) || (b >= '0' && b <= '9') || b == '_'
}
