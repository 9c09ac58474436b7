package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/kanaz/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "kanaz",
	Short: "Hiragana drill trainer",
	Long:  "kanaz drills hiragana reading in the terminal, showing the kana you miss more often.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("data-dir", "", "Directory for corpus, progress, event log and config (overrides KANAZ_DATA_DIR)")
	flags.String("config", "", "Path to a YAML config file")
	flags.Int("tier", 0, "Difficulty tier: 1 gojuuon, 2 adds dakuon, 3 all kana")
	flags.Bool("no-save", false, "Do not write progress after each round")
	flags.Bool("debug", false, "Log at debug level")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig resolves settings, applying only the flags the user set so
// that env vars and the config file are not masked by flag defaults.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Flags()
	overrides := map[string]any{}

	if flags.Changed("data-dir") {
		v, _ := flags.GetString("data-dir")
		overrides[config.KeyDataDir] = v
	}
	if flags.Changed("tier") {
		v, _ := flags.GetInt("tier")
		overrides[config.KeyTier] = v
	}
	if flags.Changed("no-save") {
		v, _ := flags.GetBool("no-save")
		overrides[config.KeySave] = !v
	}
	if flags.Changed("debug") {
		v, _ := flags.GetBool("debug")
		overrides[config.KeyDebug] = v
	}

	file, _ := flags.GetString("config")
	return config.Load(config.Options{ConfigFile: file, Overrides: overrides})
}
