package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile  string
	logLevel string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "procwatch",
	Short: "Crash-only supervisor for a worker pool and a primary process",
	Long: `procwatch starts a fixed-size pool of identical worker processes plus one
singleton primary process and keeps every one of them running forever,
relaunching any child immediately on exit regardless of status.`,
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./procwatch.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
}

// initConfig reads in config file and ENV variables if set
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("procwatch")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv()

	// Bind specific environment variables
	viper.BindEnv("workers", "WS")
	viper.BindEnv("native_library_path", "LD_LIBRARY_PATH")
	viper.BindEnv("worker_command", "PROCWATCH_WORKER_CMD")
	viper.BindEnv("primary_command", "PROCWATCH_PRIMARY_CMD")

	// The config file is optional; a missing file is not an error.
	viper.ReadInConfig()
}
