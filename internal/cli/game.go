package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mcoot/metrogame/internal/model"
)

func newNewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new [name]",
		Short: "Start a new game",
		Long: `Start a new game and store it under name. Without a name one is
generated. Board size, player count and scoring come from config unless
given as flags.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 1 {
				name = args[0]
			}

			settings, err := cfg.GameSettings()
			if err != nil {
				return err
			}

			state, err := app.GameController.CreateGame(cmd.Context(), name, settings)
			if err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(newGameView(state))
			return nil
		},
	}

	cmd.Flags().Int("players", 0, "Number of players, 2 to 6 (env: METRO_GAME_PLAYERS)")
	cmd.Flags().Int("rows", 0, "Board rows (env: METRO_GAME_ROWS)")
	cmd.Flags().Int("cols", 0, "Board columns (env: METRO_GAME_COLS)")
	cmd.Flags().String("score-type", "", "Scoring: simple, crossover, time (env: METRO_GAME_SCORE_TYPE)")
	bindFlag(cmd, "game.players", "players")
	bindFlag(cmd, "game.rows", "rows")
	bindFlag(cmd, "game.cols", "cols")
	bindFlag(cmd, "game.score_type", "score-type")

	return cmd
}

func newPlaceCmd() *cobra.Command {
	var drawPile bool

	cmd := &cobra.Command{
		Use:   "place <name> <x> <y>",
		Short: "Place the current player's tile",
		Long: `Place the current player's tile at row x, column y. With --draw-pile
the tile on top of the draw pile is placed instead.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			x, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid x: %w", err)
			}

			y, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid y: %w", err)
			}

			result, err := app.GameController.PlaceTile(cmd.Context(), name, model.NewPosition(x, y), drawPile)
			if err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(newPlaceView(result))
			return nil
		},
	}

	cmd.Flags().BoolVar(&drawPile, "draw-pile", false, "Place the draw pile's tile")

	return cmd
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show a game's board, hands and scores",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := app.GameController.GetGame(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(newGameView(state))
			return nil
		},
	}
}

func newScoresCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scores <name>",
		Short: "Show every player's score",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := app.GameController.GetGame(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(ScoresView{
				Name:     state.Name,
				Scores:   state.Scores,
				Complete: state.Complete,
			})
			return nil
		},
	}
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored games",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			games, err := app.GameController.ListGames(cmd.Context())
			if err != nil {
				return err
			}

			views := make([]SummaryView, len(games))
			for i, g := range games {
				views[i] = newSummaryView(g)
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(views)
			return nil
		},
	}
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a stored game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.GameController.DeleteGame(cmd.Context(), args[0]); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).PrintMessage(fmt.Sprintf("Game %s deleted", args[0]))
			return nil
		},
	}
}

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <name> <path>",
		Short: "Write a game to a save file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.GameController.ExportGame(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).PrintMessage(fmt.Sprintf("Game %s exported to %s", args[0], args[1]))
			return nil
		},
	}
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <name> <path>",
		Short: "Store a game read from a save file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := app.GameController.ImportGame(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(newGameView(state))
			return nil
		},
	}
}
