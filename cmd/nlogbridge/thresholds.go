package main

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/philipp01105/nlogbridge/severity"
)

func newThresholdsCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "thresholds",
		Short: "Resolve and print the severity thresholds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			cache, _ := opts.newCache(cfg)
			t := cache.Thresholds()

			out := cmd.OutOrStdout()
			if asJSON {
				values := make(map[string]int, len(severity.Tiers))
				for _, tier := range severity.Tiers {
					values[tier.String()] = t.Get(tier)
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(values)
			}

			settings := cfg.Severity.Settings()
			raw := map[severity.Tier]string{
				severity.Critical:    settings.Critical,
				severity.Error:       settings.Error,
				severity.Warning:     settings.Warn,
				severity.Information: settings.Info,
				severity.Verbose:     settings.Verbose,
			}
			for _, tier := range severity.Tiers {
				setting := raw[tier]
				if setting == "" {
					setting = "(unset)"
				}
				fmt.Fprintf(out, "%-12s %7d  %s\n", tier, t.Get(tier), setting)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}
