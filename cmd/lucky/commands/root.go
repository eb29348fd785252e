package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configFile string
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "lucky",
	Short: "每日運勢與黃曆 API 服務",
	Long: `Lucky - 每日運勢與黃曆服務

提供每日綜合運勢、學業、事業、愛情評分，
以及農曆轉換、節氣與宜忌黃曆查詢。

Usage:
  go run ./cmd/lucky [command]

Examples:
  go run ./cmd/lucky api
  go run ./cmd/lucky fortune 2024-02-04 --zodiac 龍 --constellation 獅子座
  go run ./cmd/lucky almanac 2024-02-10
  go run ./cmd/lucky terms 2024
  go run ./cmd/lucky keygen`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
