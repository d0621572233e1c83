package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/oasgen-dev/oasgen/internal/cli"
)

func main() {
	root := &cobra.Command{
		Use:   "oasgen",
		Short: "Generate TypeScript artifacts from OpenAPI specs",
	}

	root.AddCommand(newGenerateCmd())
	root.AddCommand(newValidateCmd())

	if err := root.Execute(); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}

func newGenerateCmd() *cobra.Command {
	var configPath string
	var singleSpec string
	var concurrency int
	var input string
	var typ string
	var outDir string
	var packageName string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate artifacts for every spec in the config",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.RunGenerate(cli.RunGenerateParams{
				ConfigPath:  configPath,
				SingleSpec:  singleSpec,
				Concurrency: concurrency,
				Fallback: cli.FallbackParams{
					Spec:        input,
					Type:        typ,
					OutDir:      outDir,
					PackageName: packageName,
				},
			})
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to oasgen.yaml config")
	cmd.Flags().StringVar(&singleSpec, "spec", "", "Generate only the named spec from config")
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "Max specs processed in parallel (0 = default)")
	// Fallback single-target flags
	cmd.Flags().StringVar(&input, "input", "", "OpenAPI spec file (yaml/json)")
	cmd.Flags().StringVar(&typ, "type", "", "Target type (types, schema, browser, loadtest)")
	cmd.Flags().StringVar(&outDir, "out", "", "Output directory")
	cmd.Flags().StringVar(&packageName, "package-name", "", "Package name")

	return cmd
}

func newValidateCmd() *cobra.Command {
	var input string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate an OpenAPI spec",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.RunValidate(input)
		},
	}
	cmd.Flags().StringVar(&input, "input", "", "OpenAPI spec file (yaml/json)")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}
