package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newClassifyCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "classify LEVEL...",
		Short: "Print the sink tier of level names or values",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			cache, levels := opts.newCache(cfg)

			out := cmd.OutOrStdout()
			for _, arg := range args {
				level, ok := levels.Parse(arg)
				if !ok {
					if s, ok := levels.Suggest(arg); ok {
						return fmt.Errorf("unknown level %q, did you mean %q?", arg, s)
					}
					return fmt.Errorf("unknown level %q", arg)
				}
				fmt.Fprintf(out, "%s\t%d\t%s\n", arg, level, cache.Classify(int(level)))
			}
			return nil
		},
	}
}
