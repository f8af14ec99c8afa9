// Copyright (c) 2024 The Falcon Contributors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

// Command c0 drives the tokenizer and analyser over a single source file.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kibaamor/c0-parser/analyser"
	"github.com/kibaamor/c0-parser/lexer"
	"github.com/kibaamor/c0-parser/token"
)

var (
	dumpTokens bool
	dumpAST    bool
	noColor    bool
	verbose    bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "c0 [flags] source-file",
		Short: "Tokenize and analyse a C0 source file",
		Args:  cobra.ExactArgs(1),
		RunE:  runCompile,
	}
	cmd.Flags().BoolVar(&dumpTokens, "dump-tokens", false, "print every token before analysis")
	cmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "print the analysed AST on success")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable colorized output")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log analyser progress")
	return cmd
}

func newLogger() *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	log, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return log
}

func runCompile(cmd *cobra.Command, args []string) error {
	color.NoColor = noColor

	path := args[0]
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	lx, err := lexer.New(f)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	tokens := lx.All()
	if dumpTokens {
		dumpTokenStream(cmd, tokens)
	}

	log := newLogger()
	defer log.Sync()

	a := analyser.New(tokens, log)
	file, aerr := a.Analyse()
	if aerr != nil {
		fixed := aerr.WithSource(lx.Lines())
		color.New(color.FgRed, color.Bold).Fprintln(cmd.ErrOrStderr(), fixed.Error())
		return fmt.Errorf("analysis failed")
	}

	if dumpAST {
		fmt.Fprintln(cmd.OutOrStdout(), file.String())
	}
	color.New(color.FgGreen).Fprintln(cmd.OutOrStdout(), "ok")
	return nil
}

// dumpTokenStream prints one line per token, kind in cyan and value in
// yellow, matching the terse register the rest of this CLI's diagnostics use.
func dumpTokenStream(cmd *cobra.Command, tokens []token.Token) {
	kind := color.New(color.FgCyan)
	value := color.New(color.FgYellow)
	out := cmd.OutOrStdout()
	for _, t := range tokens {
		kind.Fprintf(out, "%-12s", t.Kind.String())
		value.Fprintf(out, "%s", t.ValueString())
		fmt.Fprintf(out, "  at %s\n", t.Range)
		if t.IsNul() || t.IsErr() {
			break
		}
	}
}
