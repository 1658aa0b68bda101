package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/psantana5/procwatch/pkg/config"
)

var configOutput string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration inspection",
	Long:  `Commands for inspecting the configuration the supervisor would run with.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the resolved configuration",
	Long: `Resolves the pool size, search paths, and commands exactly the way the run
command would (environment, flags, optional procwatch.yaml) and prints the
result.`,
	RunE: runConfigShow,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)

	configShowCmd.Flags().StringVarP(&configOutput, "output", "o", "table",
		"Output format: table, json, yaml")
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Resolve(viper.GetViper())
	if err != nil {
		return err
	}
	return renderConfig(os.Stdout, cfg, configOutput)
}

func renderConfig(w io.Writer, cfg config.Config, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		fmt.Fprintln(w, string(data))

	case "yaml":
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		fmt.Fprint(w, string(data))

	default:
		table := tablewriter.NewWriter(w)
		table.Header("Setting", "Value")
		table.Append([]string{"Pool size", fmt.Sprintf("%d", cfg.PoolSize)})
		table.Append([]string{"Worker command", cfg.WorkerCommand})
		table.Append([]string{"Primary command", cfg.PrimaryCommand})
		table.Append([]string{"Native library path", cfg.NativeLibraryPath})
		table.Append([]string{"Module search path", cfg.ModuleSearchPath})
		statusAddr := cfg.StatusAddr
		if statusAddr == "" {
			statusAddr = "(disabled)"
		}
		table.Append([]string{"Status endpoint", statusAddr})
		table.Render()
	}

	return nil
}
