// Command statimc is the CLI entrypoint for the statim compiler core.
// Since no parser is implemented, it compiles one of the six built-in
// internal/fixtures programs rather than reading source text, with
// CompCert-style per-stage debug-dump flags (-dast, -dsiir, -dmachine).
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/statim-lang/statimc/internal/ast"
	"github.com/statim-lang/statimc/internal/clog"
	"github.com/statim-lang/statimc/internal/config"
	"github.com/statim-lang/statimc/internal/fixtures"
	"github.com/statim-lang/statimc/internal/machine/isa/x64"
	"github.com/statim-lang/statimc/internal/pipeline"
	"github.com/statim-lang/statimc/internal/siir"
)

var version = "0.1.0"

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd := newRootCmd(os.Stdout, os.Stderr)
	rootCmd.SetArgs(normalizeFlags(os.Args[1:]))
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		return 1
	}
	return 0
}

// debugFlagNames lists the single-dash dump flags accepted CompCert-
// style (-dast, -dsiir, -dmachine), normalized to pflag's double-dash
// form before parsing.
var debugFlagNames = []string{"dast", "dsiir", "dmachine"}

func normalizeFlags(args []string) []string {
	result := make([]string, len(args))
	for i, arg := range args {
		result[i] = arg
		for _, name := range debugFlagNames {
			if arg == "-"+name {
				result[i] = "--" + name
				break
			}
		}
	}
	return result
}

func newRootCmd(out, errOut *os.File) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "statimc",
		Short:         "statimc compiles the statim language's core IR/machine pipeline",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	rootCmd.AddCommand(newCompileCmd(out, errOut))
	rootCmd.AddCommand(newListCmd(out))
	return rootCmd
}

func newListCmd(out *os.File) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "list the built-in fixture programs statimc compile accepts",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, f := range fixtures.All {
				fmt.Fprintf(out, "%-16s %s\n", f.Name, f.Description)
			}
			return nil
		},
	}
}

func newCompileCmd(out, errOut *os.File) *cobra.Command {
	var (
		dAST, dSIIR, dMachine bool
		targetName            string
		configPath             string
		runDCE                 bool
	)

	cmd := &cobra.Command{
		Use:   "compile <fixture-name>",
		Short: "run a built-in fixture through syma -> sema -> lower -> verify -> (DCE) -> selection -> print",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			cfg = cfg.ApplyFlags(targetName, dumpFlags(dAST, dSIIR, dMachine))
			if err := cfg.Validate(); err != nil {
				return err
			}

			f, ok := fixtures.Lookup(args[0])
			if !ok {
				return fmt.Errorf("statimc: unknown fixture %q (see \"statimc list\")", args[0])
			}

			target, _ := config.ResolveTarget(cfg.Target)
			logger := clog.New(errOut, "statimc")
			prog := f.Build()

			if cfg.WantDump(config.StageAST) {
				logger.Stage("ast")
				ast.NewPrinter(out).PrintProgram(prog)
			}

			res, diags, err := pipeline.Compile(prog, target, f.Name, pipeline.Options{RunDCE: runDCE})
			if err != nil {
				for _, d := range diags {
					fmt.Fprintln(errOut, d.String())
				}
				return err
			}

			if cfg.WantDump(config.StageSIIR) {
				logger.Stage("siir")
				siir.Print(out, res.SIIR)
			}
			if runDCE {
				logger.Infof("trivial-DCE removed %d instruction(s)", res.Removed)
			}
			if cfg.WantDump(config.StageMachine) {
				logger.Stage("machine")
				x64.NewPrinter(out).PrintModule(res.Machine)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dAST, "dast", false, "dump the AST before lowering")
	cmd.Flags().BoolVar(&dSIIR, "dsiir", false, "dump the SIIR form after lowering")
	cmd.Flags().BoolVar(&dMachine, "dmachine", false, "dump the selected x86-64 machine form")
	cmd.Flags().StringVar(&targetName, "target", "", "target triple name (default: x64-systemv-linux)")
	cmd.Flags().StringVar(&configPath, "config", "statimc.yaml", "path to a YAML config file (missing file is not an error)")
	cmd.Flags().BoolVar(&runDCE, "dce", false, "run trivial dead-code elimination before selection")
	return cmd
}

func dumpFlags(dAST, dSIIR, dMachine bool) []string {
	var stages []string
	if dAST {
		stages = append(stages, config.StageAST)
	}
	if dSIIR {
		stages = append(stages, config.StageSIIR)
	}
	if dMachine {
		stages = append(stages, config.StageMachine)
	}
	return stages
}
