package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/FlatBartender/bis-solver/internal/app"
	"github.com/FlatBartender/bis-solver/internal/report"
)

var (
	spellSpeed uint32
	showBuffs  bool
)

var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Print the rotation the timeline evaluator plays at a spell speed",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tl := app.New(cfg, app.WithLogger(log)).Timeline()
		rot := tl.Rotation(spellSpeed)

		if jsonOut {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(rot)
		}
		if showBuffs {
			for _, b := range tl.Buffs() {
				fmt.Printf("%8.2f %8.2f  %-28s %s %+g\n",
					b.Span.Begin, b.Span.End, b.Value.Source, b.Value.Kind, b.Value.Value)
			}
			fmt.Println()
		}
		fmt.Print(report.Rotation(rot))
		return nil
	},
}

func init() {
	timelineCmd.Flags().Uint32Var(&spellSpeed, "sps", 400, "spell speed used for the GCD")
	timelineCmd.Flags().BoolVar(&showBuffs, "buffs", false, "list the scheduled buff windows first")
	rootCmd.AddCommand(timelineCmd)
}
