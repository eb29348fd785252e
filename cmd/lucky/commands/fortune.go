package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alllucky/server/internal/fortune"
)

// fortuneCmd computes one day's fortune without starting the server.
var fortuneCmd = &cobra.Command{
	Use:   "fortune [date]",
	Short: "計算單日運勢",
	Long: `計算指定日期的運勢評分並輸出 JSON。

Example:
  go run ./cmd/lucky fortune 2024-02-04
  go run ./cmd/lucky fortune 2024-02-04 --zodiac 龍 --constellation 獅子座
  go run ./cmd/lucky fortune 2024-02-04 --facet love`,
	Args: cobra.ExactArgs(1),
	RunE: runFortune,
}

var (
	fortuneZodiac        string
	fortuneConstellation string
	fortuneFacet         string
)

func init() {
	rootCmd.AddCommand(fortuneCmd)

	fortuneCmd.Flags().StringVar(&fortuneZodiac, "zodiac", "", "生肖 (例: 龍)")
	fortuneCmd.Flags().StringVar(&fortuneConstellation, "constellation", "", "星座 (例: 獅子座)")
	fortuneCmd.Flags().StringVar(&fortuneFacet, "facet", "daily", "daily|study|career|love")
}

func runFortune(cmd *cobra.Command, args []string) error {
	facet := fortune.Facet(fortuneFacet)
	if !facet.Valid() {
		return fmt.Errorf("unknown facet %q", fortuneFacet)
	}

	svc, _, err := newOfflineServices()
	if err != nil {
		return err
	}

	raw, err := svc.Fortune(context.Background(), args[0], fortuneZodiac, fortuneConstellation, facet)
	if err != nil {
		return err
	}

	return printJSON(raw)
}

// printJSON re-indents a raw payload for terminal output.
func printJSON(raw json.RawMessage) error {
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return err
	}

	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	fmt.Println(string(out))
	return nil
}

// printAsJSON marshals any value for terminal output.
func printAsJSON(v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	fmt.Println(string(out))
	return nil
}
