package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and edit configuration",
	Long: `Reads and writes the TOML configuration file. Keys use dot notation,
for example analysis.base_url or analysis.ask_limit.`,
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Long: `Sets a configuration value and saves the file. Values that parse as
integers or booleans are stored typed; everything else is a string.`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	val, ok := configStore.Get(args[0])
	if !ok {
		return fmt.Errorf("key %q not set", args[0])
	}

	cmd.Printf("%v\n", val)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	key, raw := args[0], args[1]

	var value any = raw
	if i, err := strconv.Atoi(raw); err == nil {
		value = i
	} else if b, err := strconv.ParseBool(raw); err == nil {
		value = b
	}

	if err := configStore.Set(key, value); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	cmd.Printf("Set %s = %v\n", key, value)
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	cmd.Println(configStore.Path())
	return nil
}
