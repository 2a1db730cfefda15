package main

import (
	"fmt"
	"os"
	"time"

	"github.com/npillmayer/jitcss"
	"github.com/npillmayer/jitcss/engine"
	"github.com/spf13/cobra"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build a stylesheet once",
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := input(cmd)
		if err != nil {
			return err
		}
		log := &engine.Log{}
		start := time.Now()
		res, err := jitcss.New(jitcss.WithReporter(log)).Process(in)
		if err != nil {
			return err
		}
		report(log)
		if err := output(cmd, res.CSS); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Done in %v.\n", time.Since(start).Round(time.Millisecond))
		return nil
	},
}

// report prints build diagnostics to stderr.
func report(log *engine.Log) {
	for _, d := range log.Diagnostics {
		fmt.Fprintf(os.Stderr, "warn - %s\n", d)
	}
	log.Diagnostics = nil
}

func init() {
	buildCmd.Flags().StringP("output", "o", "", "output file (default stdout)")
	rootCmd.AddCommand(buildCmd)
}
