package main

import (
	"fmt"

	"github.com/hnhuaxi/singleton/gen"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newRootCmd(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "singletongen [dir...]",
		Short: "Generate singleton accessors for annotated Go structs",
		Long: `singletongen scans the Go files of each directory (default ".") for struct
types annotated with //singleton:safe or //singleton:unsafe and writes a
companion <file>_singleton.go holding the accessors:

	//singleton:safe    InitializeT, WriteT, ReadT (reader/writer locked, first initialize wins)
	//singleton:unsafe  InitializeT, GlobalT       (unsynchronized, last initialize wins)

Run it from a package with:

	//go:generate go run github.com/hnhuaxi/singleton/cmd/singletongen
`,
		Version:       version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runGenerate,
	}

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default is .singletongen.yaml in each directory)")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("suffix", "", "suffix of generated files (default _singleton.go)")
	flags.String("runtime", "", "import path of the singleton runtime package")
	flags.String("tags", "", "build constraint expression added to generated files")

	rootCmd.Flags().Bool("dry-run", false, "print generated files instead of writing them")

	rootCmd.AddCommand(newListCmd())
	return rootCmd
}

func targetDirs(args []string) []string {
	if len(args) == 0 {
		return []string{"."}
	}
	return args
}

func setup(cmd *cobra.Command, dir string) (*gen.Generator, *zap.Logger, error) {
	level, _ := cmd.Flags().GetString("log-level")
	log, err := newLogger(level)
	if err != nil {
		return nil, nil, err
	}

	opts, err := loadOptions(cmd, dir)
	if err != nil {
		return nil, nil, err
	}

	g, err := gen.New(opts, log)
	if err != nil {
		return nil, nil, err
	}
	return g, log, nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	for _, dir := range targetDirs(args) {
		g, log, err := setup(cmd, dir)
		if err != nil {
			return err
		}

		outputs, err := g.GenerateDir(cmd.Context(), dir)
		if err != nil {
			return err
		}

		if len(outputs) == 0 {
			log.Sugar().Debugw("no singleton declarations", "dir", dir)
		}

		if dryRun {
			for _, out := range outputs {
				if out.Remove {
					fmt.Fprintf(cmd.OutOrStdout(), "// remove %s\n", out.Path)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "// %s\n%s", out.Path, out.Source)
			}
			continue
		}

		if err := g.WriteOutputs(outputs); err != nil {
			return err
		}
		_ = log.Sync()
	}

	return nil
}
