package commands

import (
	"context"

	"github.com/spf13/cobra"
)

// almanacCmd prints one day's almanac record.
var almanacCmd = &cobra.Command{
	Use:   "almanac [date]",
	Short: "查詢單日黃曆",
	Long: `查詢指定日期的黃曆：農曆日期、生肖、干支、宜忌。

Example:
  go run ./cmd/lucky almanac 2024-02-10`,
	Args: cobra.ExactArgs(1),
	RunE: runAlmanac,
}

func init() {
	rootCmd.AddCommand(almanacCmd)
}

func runAlmanac(cmd *cobra.Command, args []string) error {
	_, svc, err := newOfflineServices()
	if err != nil {
		return err
	}

	daily, err := svc.Daily(context.Background(), args[0])
	if err != nil {
		return err
	}

	return printAsJSON(daily)
}
