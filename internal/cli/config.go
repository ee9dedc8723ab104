package cli

import (
	"fmt"
	"strings"

	"github.com/imgajeed76/erpgrid/internal/config"
	"github.com/imgajeed76/erpgrid/internal/ui/styles"
	"github.com/imgajeed76/erpgrid/internal/util"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config <key> [value]",
		Short: "Get and set erpgrid options",
		Long: `Get and set erpgrid configuration options.

The config file lives at the path printed by --path.

Examples:
  erpgrid config table.page_size          # Get value
  erpgrid config table.page_size 25       # Set value
  erpgrid config search.threshold contains
  erpgrid config --list                   # List all config

Options:
` + config.GenerateHelpText(),
		RunE: runConfig,
	}

	cmd.Flags().BoolP("list", "l", false, "List all configuration")
	cmd.Flags().Bool("path", false, "Print the config file path")

	return cmd
}

func runConfig(cmd *cobra.Command, args []string) error {
	listAll, _ := cmd.Flags().GetBool("list")
	showPath, _ := cmd.Flags().GetBool("path")
	out := cmd.OutOrStdout()

	if showPath {
		fmt.Fprintln(out, config.GlobalConfigPath())
		return nil
	}

	// Load config
	cfg, err := config.LoadGlobal()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if listAll {
		for _, key := range config.ListKeys() {
			value, _ := cfg.GetValue(key)
			fmt.Fprintf(out, "%s=%s\n", key, value)
		}
		for _, s := range cfg.Payroll.Slabs {
			fmt.Fprintln(out, styles.Mutef("payroll.slab up_to=%s percent=%g", util.FormatAmount(s.UpTo), s.Percent))
		}
		return nil
	}

	if len(args) == 0 {
		return util.MissingArgumentError("key", "erpgrid config --list")
	}
	if len(args) > 2 {
		return util.TooManyArgumentsError(2, len(args))
	}

	key := strings.ToLower(args[0])

	// Get or set?
	if len(args) == 1 {
		value, ok := cfg.GetValue(key)
		if !ok {
			return unknownKeyError(key)
		}
		fmt.Fprintln(out, value)
		return nil
	}

	if err := cfg.SetValue(key, args[1]); err != nil {
		return util.NewError(fmt.Sprintf("Cannot set %s", key)).Wrap(err)
	}

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}

func unknownKeyError(key string) error {
	return util.NewError(fmt.Sprintf("Unknown config key: %s", key)).
		WithMessage("Valid keys: " + strings.Join(config.ListKeys(), ", "))
}
