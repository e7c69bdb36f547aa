package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPlayerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "player",
		Short: "Player commands",
	}

	cmd.AddCommand(newPlayerStatsCmd())
	cmd.AddCommand(newPlayerPresenceCmd())

	return cmd
}

func newPlayerStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats [player-id]",
		Short: "Show a player's aggregated stats",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			playerID := cfg.PlayerID
			if len(args) == 1 {
				playerID = args[0]
			}
			if playerID == "" {
				return fmt.Errorf("player ID required (set --player or pass an argument)")
			}

			var result PlayerStats
			if err := client.Get(fmt.Sprintf("/api/v1/players/%s/stats", playerID), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newPlayerPresenceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presence <player-id>",
		Short: "Show a player's presence",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Presence
			if err := client.Get(fmt.Sprintf("/api/v1/players/%s/presence", args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
