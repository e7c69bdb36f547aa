package cli

import (
	"github.com/spf13/cobra"
)

func newMatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Matchmaking commands",
	}

	cmd.AddCommand(newMatchFindCmd())
	cmd.AddCommand(newMatchCancelCmd())

	return cmd
}

func newMatchFindCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "find",
		Short: "Search for an opponent",
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]string{}
			if cfg.DisplayName != "" {
				body["display_name"] = cfg.DisplayName
			}

			var result MatchResult
			if err := client.Post("/api/v1/matchmaking", body, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newMatchCancelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel",
		Short: "Cancel an active search",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/api/v1/matchmaking"); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Search cancelled")
			return nil
		},
	}
}
