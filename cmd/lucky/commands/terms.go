package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// termsCmd prints a year's solar term dates.
var termsCmd = &cobra.Command{
	Use:   "terms [year]",
	Short: "查詢年度節氣",
	Long: `列出指定年份的二十四節氣日期。

Example:
  go run ./cmd/lucky terms 2024`,
	Args: cobra.ExactArgs(1),
	RunE: runTerms,
}

func init() {
	rootCmd.AddCommand(termsCmd)
}

func runTerms(cmd *cobra.Command, args []string) error {
	year, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid year %q", args[0])
	}

	_, svc, err := newOfflineServices()
	if err != nil {
		return err
	}

	terms, err := svc.SolarTerms(context.Background(), year)
	if err != nil {
		return err
	}

	return printAsJSON(terms)
}
