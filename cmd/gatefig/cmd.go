package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gatefig/gatefig/config"
	"github.com/gatefig/gatefig/internal"
	"github.com/gatefig/gatefig/pkg/proxy"
	"github.com/gatefig/gatefig/pkg/server"
)

var (
	log *logrus.Logger

	cfgFile     string
	showVersion bool
	dumpConfig  bool
)

var cmd = &cobra.Command{
	Use:   "gatefig",
	Short: "gatefig serves the new web shell and forwards everything not yet migrated to the legacy application",
	Run:   func(cmd *cobra.Command, args []string) { run() },
}

var dumpJsonSchemaCmd = &cobra.Command{
	Use:     "json-schema",
	Short:   "Generates JSON Schema for gatefig's configuration file",
	Example: "gatefig json-schema > gatefig_config_schema.json",
	RunE: func(cmd *cobra.Command, args []string) error {
		schema, err := config.JSONSchema()
		if err != nil {
			return err
		}
		fmt.Println(string(schema))
		return nil
	},
}

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "Print the forwarding rules and shell pages in match order",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Forwarding rules (first match wins):")
		for _, rule := range proxy.DefaultRules() {
			fmt.Printf("  %-20s %-7s %-10s -> %s\n", rule.Name, rule.Kind, rule.Pattern, rule.Upstream)
		}
		fmt.Println()
		fmt.Println("Shell pages:")
		for _, route := range server.PageRoutes {
			fmt.Printf("  %-20s %s\n", route.Path, route.Title)
		}
	},
}

func init() {
	cmd.AddCommand(dumpJsonSchemaCmd)
	cmd.AddCommand(routesCmd)

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default config.yaml)")
	cmd.PersistentFlags().BoolVarP(&showVersion, "version", "v", false, "print version number")
	cmd.PersistentFlags().BoolVarP(&dumpConfig, "dump-config", "d", false, "dump the effective config as YAML")
}

// Execute executes the root cobra command.
func Execute() {
	log = internal.GetLogger()
	log.SetLevel(logrus.InfoLevel)

	err := cmd.Execute()

	if err != nil {
		os.Exit(1)
	}
}
