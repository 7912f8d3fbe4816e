// Package main provides the CLI entry point for uchiwake-go.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sekisan-tools/uchiwake-go/pkg/uchiwake"
)

var (
	outputPath string
	pretty     bool
	sheets     []string
	verbose    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "uchiwake",
		Short: "Extract and verify itemized cost-breakdown tables",
		Long: `uchiwake-go extracts reference-numbered subtables and hierarchical
cost breakdowns from construction estimate workbooks and verifies their
numeric consistency, outputting JSON.`,
	}

	extractCmd := &cobra.Command{
		Use:   "extract [input.xlsx]",
		Short: "Extract reference-numbered subtables",
		Args:  cobra.ExactArgs(1),
		RunE:  runExtract,
	}
	verifyCmd := &cobra.Command{
		Use:   "verify [input.xlsx]",
		Short: "Extract the cost hierarchy and verify amounts",
		Args:  cobra.ExactArgs(1),
		RunE:  runVerify,
	}

	for _, cmd := range []*cobra.Command{extractCmd, verifyCmd} {
		cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
		cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
		cmd.Flags().StringSliceVar(&sheets, "sheet", nil, "Sheet to process (repeatable; default: all after the first)")
		cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log diagnostics to stderr")
	}

	rootCmd.AddCommand(extractCmd, verifyCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func buildOptions() (uchiwake.Options, func(), error) {
	opts := uchiwake.Options{Sheets: sheets}
	cleanup := func() {}

	if verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return opts, cleanup, fmt.Errorf("logger setup failed: %w", err)
		}
		opts.Logger = logger
		cleanup = func() { _ = logger.Sync() }
	}
	return opts, cleanup, nil
}

func runExtract(cmd *cobra.Command, args []string) error {
	opts, cleanup, err := buildOptions()
	if err != nil {
		return err
	}
	defer cleanup()

	result, err := uchiwake.Extract(args[0], opts)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}
	return writeJSON(result)
}

func runVerify(cmd *cobra.Command, args []string) error {
	opts, cleanup, err := buildOptions()
	if err != nil {
		return err
	}
	defer cleanup()

	result, err := uchiwake.VerifyWorkbook(args[0], opts)
	if err != nil {
		return fmt.Errorf("verification failed: %w", err)
	}
	return writeJSON(result)
}

func writeJSON(v interface{}) error {
	var (
		data []byte
		err  error
	)
	if pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, data, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	fmt.Println(string(data))
	return nil
}
