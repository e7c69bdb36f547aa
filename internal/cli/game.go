package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game commands",
	}

	cmd.AddCommand(newGameCreateCmd())
	cmd.AddCommand(newGameJoinCmd())
	cmd.AddCommand(newGameGetCmd())
	cmd.AddCommand(newGameMoveCmd())
	cmd.AddCommand(newGamePassCmd())
	cmd.AddCommand(newGameExchangeCmd())
	cmd.AddCommand(newGamePauseCmd())
	cmd.AddCommand(newGameAnswerCmd())
	cmd.AddCommand(newGameResumeCmd())
	cmd.AddCommand(newGameResignCmd())
	cmd.AddCommand(newGameCancelCmd())
	cmd.AddCommand(newGameSummaryCmd())
	cmd.AddCommand(newGameTimeExpiredCmd())

	return cmd
}

func newGameCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Create a private game with a join code",
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]string{}
			if cfg.DisplayName != "" {
				body["display_name"] = cfg.DisplayName
			}

			var result GameState
			if err := client.Post("/api/v1/games/private", body, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameJoinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "join <code>",
		Short: "Join a private game by code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]string{"code": args[0]}
			if cfg.DisplayName != "" {
				body["display_name"] = cfg.DisplayName
			}

			var result GameState
			if err := client.Post("/api/v1/games/join", body, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <game-id>",
		Short: "Get current game state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result GameState
			if err := client.Get(fmt.Sprintf("/api/v1/games/%s", args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameMoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move <game-id> <row,col,letter>...",
		Short: "Submit a move as a list of placements",
		Long: `Submit a move. Each placement is row,col,letter, for example:

  letterduel game move abc123 7,7,C 7,8,A 7,9,T`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			gameID := args[0]

			placements := make([]map[string]any, 0, len(args)-1)
			for _, arg := range args[1:] {
				parts := strings.Split(arg, ",")
				if len(parts) != 3 {
					return fmt.Errorf("invalid placement %q: expected row,col,letter", arg)
				}
				row, err := strconv.Atoi(parts[0])
				if err != nil {
					return fmt.Errorf("invalid row in %q", arg)
				}
				col, err := strconv.Atoi(parts[1])
				if err != nil {
					return fmt.Errorf("invalid col in %q", arg)
				}
				letter := strings.ToUpper(parts[2])
				if len(letter) != 1 || letter[0] < 'A' || letter[0] > 'Z' {
					return fmt.Errorf("invalid letter in %q: must be A-Z", arg)
				}
				placements = append(placements, map[string]any{
					"row":    row,
					"col":    col,
					"letter": letter,
				})
			}

			body := map[string]any{"placements": placements}

			var result MoveResult
			if err := client.Post(fmt.Sprintf("/api/v1/games/%s/move", gameID), body, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGamePassCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pass <game-id>",
		Short: "Pass your turn",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result GameState
			if err := client.Post(fmt.Sprintf("/api/v1/games/%s/pass", args[0]), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameExchangeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "exchange <game-id> <letters>",
		Short: "Exchange rack tiles with the bag",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]string{"letters": strings.ToUpper(args[1])}

			var result GameState
			if err := client.Post(fmt.Sprintf("/api/v1/games/%s/exchange", args[0]), body, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGamePauseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pause <game-id>",
		Short: "Request a pause",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result GameState
			if err := client.Post(fmt.Sprintf("/api/v1/games/%s/pause", args[0]), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameAnswerCmd() *cobra.Command {
	var reject bool

	cmd := &cobra.Command{
		Use:   "answer <game-id>",
		Short: "Answer the opponent's pause request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]bool{"accept": !reject}

			var result GameState
			if err := client.Post(fmt.Sprintf("/api/v1/games/%s/pause/answer", args[0]), body, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&reject, "reject", false, "Reject the pause instead of accepting")

	return cmd
}

func newGameResumeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resume <game-id>",
		Short: "Resume a paused game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result GameState
			if err := client.Post(fmt.Sprintf("/api/v1/games/%s/resume", args[0]), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameResignCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resign <game-id>",
		Short: "Resign the game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result GameState
			if err := client.Post(fmt.Sprintf("/api/v1/games/%s/resign", args[0]), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameCancelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <game-id>",
		Short: "Cancel a game waiting for an opponent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result GameState
			if err := client.Do("DELETE", fmt.Sprintf("/api/v1/games/%s", args[0]), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary <game-id>",
		Short: "Show the summary of a finished game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result GameSummary
			if err := client.Get(fmt.Sprintf("/api/v1/games/%s/summary", args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameTimeExpiredCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "time-expired <game-id>",
		Short: "Report that the turn timer has run out",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result GameState
			if err := client.Post(fmt.Sprintf("/api/v1/games/%s/time-expired", args[0]), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
