package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"cito/internal/sema"
	"cito/internal/source"
	"cito/internal/system"
)

var assignFormat string

func init() {
	assignCmd.Flags().StringVar(&assignFormat, "format", "pretty", "diagnostics format (pretty|json|golden)")
}

var assignCmd = &cobra.Command{
	Use:   "assign TARGET SOURCE",
	Short: "Check whether a SOURCE value may be stored in a TARGET",
	Example: `  cito assign 'byte' '(0 .. 100)'
  cito assign 'Regex#' 'Regex'`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		fs := source.NewFileSet()
		file := fs.AddVirtual("<args>", []byte(args[0]+" = "+args[1]+"\n"))
		q := sema.Query{Name: "assign", Target: args[0], Source: args[1], Pos: source.Pos{File: file, Line: 1}}

		env := system.NewWithContext(cmd.Context())
		results, err := sema.CheckBatch(cmd.Context(), env, []sema.Query{q}, sema.BatchOptions{Workers: 1})
		if err != nil {
			return err
		}
		res := results[0]
		if res.OK {
			fmt.Fprintf(cmd.OutOrStdout(), "%s is assignable to %s\n", args[1], res.Type)
			return nil
		}
		bag, err := collectDiagnostics(cmd, results)
		if err != nil {
			return err
		}
		if err := writeDiagnostics(cmd.OutOrStdout(), assignFormat, bag, fs); err != nil {
			return err
		}
		return errors.New("not assignable")
	},
}
