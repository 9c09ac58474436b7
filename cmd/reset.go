package cmd

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset every kana weight and counter",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes && !confirm(cmd, "Reset all progress? [y/N] ") {
			fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
			return nil
		}

		e, err := bootstrap(ctx, cmd, true)
		if err != nil {
			return err
		}
		defer e.close()

		if _, err := e.progress.Reset(e.cards); err != nil {
			return fmt.Errorf("reset progress: %w", err)
		}
		e.logger.Info("progress reset", zap.String("path", e.progress.Path()), zap.Int("cards", len(e.cards)))
		fmt.Fprintf(cmd.OutOrStdout(), "Progress reset for %d kana.\n", len(e.cards))
		return nil
	},
}

func confirm(cmd *cobra.Command, prompt string) bool {
	fmt.Fprint(cmd.OutOrStdout(), prompt)
	line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Skip the confirmation prompt")
}
