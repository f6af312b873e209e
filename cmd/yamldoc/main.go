// Copyright 2026 The yamldoc Authors
// SPDX-License-Identifier: Apache-2.0

// Command yamldoc inspects and converts YAML streams: resolve to JSON,
// dump the concrete syntax tree, reformat, or lint with line/column
// diagnostics.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/go-kit/log"
	"github.com/spf13/cobra"

	"github.com/yamldoc/yamldoc"
)

var (
	flagSchema   string
	flagLogLevel string
	flagIndent   int
)

func main() {
	root := &cobra.Command{
		Use:           "yamldoc",
		Short:         "Inspect and convert YAML streams",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flagSchema, "schema", "core",
		"schema to resolve with: core, failsafe, json or yaml-1.1")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn",
		"warning verbosity: silent, error, warn or debug")
	root.AddCommand(parseCmd(), cstCmd(), fmtCmd(), lintCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "yamldoc:", err)
		os.Exit(1)
	}
}

func commonOptions() []yamldoc.Option {
	schema := flagSchema
	if schema == "" {
		schema = "core"
	}
	level := flagLogLevel
	if level == "" {
		level = "warn"
	}
	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	return []yamldoc.Option{
		yamldoc.WithSchema(schema),
		yamldoc.WithLogLevel(yamldoc.LogLevel(level)),
		yamldoc.WithLogger(logger),
	}
}

func readInput(args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		b, err := os.ReadFile("/dev/stdin")
		return string(b), err
	}
	b, err := os.ReadFile(args[0])
	return string(b), err
}

func parseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse [FILE]",
		Short: "Resolve a YAML document and print its value as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readInput(args)
			if err != nil {
				return err
			}
			v, err := yamldoc.Parse(src, commonOptions()...)
			if err != nil {
				return err
			}
			out, err := json.MarshalIndent(v, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
}

func cstCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cst [FILE]",
		Short: "Dump the concrete syntax tree of a YAML stream",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readInput(args)
			if err != nil {
				return err
			}
			stream := yamldoc.ParseCST(src)
			conf := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true}
			conf.Fdump(cmd.OutOrStdout(), stream.Docs)
			return nil
		},
	}
}

func fmtCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fmt [FILE]",
		Short: "Parse and re-emit a YAML document in canonical layout",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readInput(args)
			if err != nil {
				return err
			}
			opts := append(commonOptions(), yamldoc.WithIndent(flagIndent))
			doc, err := yamldoc.ParseDocument(src, opts...)
			if err != nil {
				return err
			}
			if err := doc.FirstError(); err != nil {
				return err
			}
			out, err := yamldoc.Stringify(doc, opts...)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().IntVar(&flagIndent, "indent", 2, "spaces per nesting level")
	return cmd
}

func lintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lint [FILE]",
		Short: "Report every diagnostic of a YAML stream",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readInput(args)
			if err != nil {
				return err
			}
			docs, err := yamldoc.ParseAllDocuments(src,
				append(commonOptions(), yamldoc.WithLogLevel(yamldoc.LogSilent))...)
			if err != nil {
				return err
			}
			fatal := false
			for i, doc := range docs {
				for _, e := range doc.Errors {
					fatal = true
					printDiag(cmd, i, e)
				}
				for _, w := range doc.Warnings {
					printDiag(cmd, i, w)
				}
			}
			if fatal {
				return fmt.Errorf("lint found errors")
			}
			return nil
		},
	}
}

func printDiag(cmd *cobra.Command, doc int, e *yamldoc.Error) {
	pos := ""
	if e.LinePos != nil {
		pos = fmt.Sprintf(" at line %d, column %d", e.LinePos.Start.Line, e.LinePos.Start.Col)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "doc %d: %s%s: %s\n", doc, e.Name, pos, firstLine(e.Message))
}

func firstLine(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			return s[:i]
		}
	}
	return s
}
