package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "einkaufsliste",
	Short: "Einkaufsliste für den Haushalt",
	Long: `Einkaufsliste verwaltet den Artikelkatalog, die heutige Einkaufsliste
und Rezepte gegen den gemeinsamen Listen-Server. Änderungen werden sofort
lokal angezeigt und im Hintergrund gespeichert; schlägt das Speichern fehl,
wird die Änderung zurückgenommen.`,
	RunE: runRootDefault,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default .einkaufsliste.yaml)")
	rootCmd.PersistentFlags().String("server", "", "base URL of the list server")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}

func initConfig() {
	if cfgFile, _ := rootCmd.Flags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".einkaufsliste")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix("EINKAUFSLISTE")
	viper.AutomaticEnv()

	_ = viper.BindPFlag("server_url", rootCmd.PersistentFlags().Lookup("server"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	// It's fine if no config file is found; flags and env still apply.
	_ = viper.ReadInConfig()
}

// runRootDefault launches the TUI when a server is configured, and falls
// back to help otherwise.
func runRootDefault(cmd *cobra.Command, args []string) error {
	if viper.GetString("server_url") == "" {
		return cmd.Help()
	}
	return runTUI(cmd, nil)
}
