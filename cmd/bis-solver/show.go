package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/FlatBartender/bis-solver/internal/app"
	"github.com/FlatBartender/bis-solver/internal/errors"
	"github.com/FlatBartender/bis-solver/internal/repositories/results"
)

var showCmd = &cobra.Command{
	Use:   "show [run-id]",
	Short: "Print a stored run, or list the latest runs without an ID",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Redis.Addr == "" {
			return errors.FailedPrecondition("redis.addr is not configured")
		}
		repo, closeRepo, err := openResults()
		if err != nil {
			return err
		}
		defer closeRepo()

		if len(args) == 0 {
			out, err := repo.List(cmd.Context(), results.ListInput{})
			if err != nil {
				return err
			}
			for _, id := range out.IDs {
				fmt.Println(id)
			}
			return nil
		}

		res, err := app.New(cfg, app.WithLogger(log), app.WithResults(repo)).Show(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printResult(res)
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
