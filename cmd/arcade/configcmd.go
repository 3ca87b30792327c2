package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/stake-arcade/internal/config"
)

var flagShowConfig string

var configCmd = &cobra.Command{
	Use:   "config <game>",
	Short: "Print the effective config for a game",
	Long: `Resolve a game's config the same way play does and print it as YAML.
The output is a complete file that can be edited and passed back with
'arcade play <game> --config <file>'.

Search order:
  --config path -> ~/.arcade/configs/<game>.yaml -> ./configs/<game>.yaml -> built-in

Examples:
  arcade config racer > ~/.arcade/configs/racer.yaml
  arcade config maze --config ./hard-maze.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runConfig,
}

func init() {
	configCmd.Flags().StringVar(&flagShowConfig, "config", "", "Path to custom game config YAML")
}

func runConfig(_ *cobra.Command, args []string) error {
	var (
		cfg any
		err error
	)
	switch args[0] {
	case "racer":
		cfg, err = config.LoadRacer(flagShowConfig)
	case "maze":
		cfg, err = config.LoadMaze(flagShowConfig)
	default:
		return fmt.Errorf("unknown game %q (run 'arcade list' to see available games)", args[0])
	}
	if err != nil {
		return err
	}

	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(cfg)
}
