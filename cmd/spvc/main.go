// Command spvc compiles WGSL shaders to SPIR-V and inspects the results.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gogpu/spv"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:           "spvc",
		Short:         "WGSL to SPIR-V shader compiler",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				spv.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
					Level: slog.LevelDebug,
				})))
			}
		},
	}
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging to stderr")

	cmd.AddCommand(newCompileCommand())
	cmd.AddCommand(newHashCommand())
	cmd.AddCommand(newInspectCommand())
	return cmd
}

func newCompileCommand() *cobra.Command {
	var (
		stageTag  string
		optimize  string
		targetEnv string
		output    string
	)

	cmd := &cobra.Command{
		Use:   "compile <shader.wgsl>",
		Short: "Compile a WGSL shader to SPIR-V",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stage, err := spv.ParseStage(stageTag)
			if err != nil {
				return err
			}
			opts := []spv.CompileOption{spv.WithFilename(args[0])}
			if optimize != "" {
				level, err := parseOptimization(optimize)
				if err != nil {
					return err
				}
				opts = append(opts, spv.WithOptimize(level))
			}
			if targetEnv != "" {
				opts = append(opts, spv.WithTargetEnv(spv.TargetEnv(targetEnv)))
			}

			name := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
			art, err := spv.CompileShader(name, spv.FileSource(args[0]), stage, opts...)
			if err != nil {
				return err
			}

			out := output
			if out == "" {
				out = name + ".spv"
			}
			if err := os.WriteFile(out, art.Bytecode, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d bytes, source hash %s\n", out, len(art.Bytecode), art.SourceHash)
			return nil
		},
	}

	cmd.Flags().StringVarP(&stageTag, "stage", "s", "compute", "shader stage (vertex, fragment, compute)")
	cmd.Flags().StringVarP(&optimize, "optimize", "O", "", "optimization level (zero, size, performance)")
	cmd.Flags().StringVarP(&targetEnv, "target-env", "t", "", "target environment (vulkan1.0 ... vulkan1.3)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <name>.spv)")
	return cmd
}

func parseOptimization(tag string) (spv.OptimizationLevel, error) {
	for _, level := range spv.OptimizationLevels() {
		if level.String() == tag {
			return level, nil
		}
	}
	return 0, fmt.Errorf("unknown optimization level %q", tag)
}

func newHashCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "hash <shader.wgsl>",
		Short: "Print the source content identity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := spv.FileSource(args[0]).Resolve()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), spv.HashSource(source))
			return nil
		},
	}
}

func newInspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <shader.spv>",
		Short: "Validate and summarize a SPIR-V binary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			art, err := spv.LoadArtifact(spv.FileSource(args[0]), spv.StageCompute)
			if err != nil {
				return err
			}
			words := art.Words()
			fmt.Fprintf(cmd.OutOrStdout(), "magic:   0x%08x\n", words[0])
			if len(words) > 1 {
				version := words[1]
				fmt.Fprintf(cmd.OutOrStdout(), "version: %d.%d\n", (version>>16)&0xff, (version>>8)&0xff)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "words:   %d\n", len(words))
			return nil
		},
	}
}
