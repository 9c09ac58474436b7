package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/kanaz/internal/stats"
	"github.com/abhisek/kanaz/internal/store"
	"github.com/abhisek/kanaz/internal/ui/components"
	"github.com/abhisek/kanaz/internal/ui/theme"
)

const statsSessionLimit = 5

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show per-kana weights and accuracy",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		limit, _ := cmd.Flags().GetInt("limit")

		e, err := bootstrap(ctx, cmd, true)
		if err != nil {
			return err
		}
		defer e.close()

		var events store.EventRepo
		st, err := openStore(e.cfg)
		if err != nil {
			e.logger.Warn("event log unavailable", zap.Error(err))
		} else {
			defer st.Close()
			events = st.EventRepo()
		}

		rep, err := stats.Build(ctx, e.cards, e.records, events, statsSessionLimit)
		if err != nil {
			return fmt.Errorf("build stats: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, components.CardTable(rep.Cards, 0, limit))
		fmt.Fprintln(out)
		fmt.Fprintln(out, theme.TableHeader.Render("Accuracy by type"))
		fmt.Fprintln(out, components.TypeAccuracyBars(rep.Types, 40))
		fmt.Fprintln(out)
		fmt.Fprintln(out, theme.TableHeader.Render("Recent sessions"))
		fmt.Fprintln(out, components.SessionLines(rep.Sessions))
		return nil
	},
}

func init() {
	statsCmd.Flags().Int("limit", 0, "Show only the N heaviest kana (0 shows all)")
}
