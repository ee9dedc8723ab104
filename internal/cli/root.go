package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/imgajeed76/erpgrid/internal/logging"
	"github.com/imgajeed76/erpgrid/internal/ui/styles"
	"github.com/imgajeed76/erpgrid/internal/util"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Version information (set at build time)
	Version   = "dev"
	CommitSHA = "unknown"
	BuildDate = "unknown"
)

// logger is built by the root command before any subcommand runs.
var logger = zap.NewNop()

var rootCmd = &cobra.Command{
	Use:   "erpgrid",
	Short: "Browse ERP records in filterable, sortable, paged tables",
	Long: `erpgrid shows sales leads, approval requests and the payroll register
as tables you can search, filter, sort, page and select.

Records come from the built-in sample data, a JSON/YAML/TOML file
(--source) or a PostgreSQL/SQLite database (--db). On a terminal the
tables open in an interactive viewer; piped output is plain text.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Version:       Version,
}

func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		// Check if it's a structured ErpError
		var erpErr *util.ErpError
		if errors.As(err, &erpErr) {
			fmt.Fprintln(os.Stderr, erpErr.Format())
		} else {
			// Simple error - still format nicely
			fmt.Fprintln(os.Stderr, styles.ErrorMsg(err.Error()))
		}
		return err
	}
	return nil
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log debug output")
	rootCmd.PersistentFlags().String("log-file", "", "Write logs to this file instead of stderr")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")

	// Version flag template to show more info
	rootCmd.SetVersionTemplate(fmt.Sprintf("erpgrid version %s\n  commit: %s\n  built:  %s\n", Version, CommitSHA, BuildDate))

	// Set up pre-run to handle global flags
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
			_ = os.Setenv("ERPGRID_NO_COLOR", "1")
		}
		verbose, _ := cmd.Flags().GetBool("verbose")
		logFile, _ := cmd.Flags().GetString("log-file")
		log, err := logging.New(verbose, logFile)
		if err != nil {
			return util.NewError("Cannot open log").WithContext(logFile).Wrap(err)
		}
		logger = log
		return nil
	}
	rootCmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	}

	// Add all subcommands
	rootCmd.AddCommand(
		newVersionCmd(),
		newConfigCmd(),
		newLeadsCmd(),
		newApprovalsCmd(),
		newEmployeesCmd(),
		newPayrollCmd(),
		newUploadCmd(),
		newCompletionCmd(),
	)
}

func newCompletionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for erpgrid.

To load completions:

Bash:
  $ source <(erpgrid completion bash)

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ erpgrid completion zsh > "${fpath[1]}/_erpgrid"

Fish:
  $ erpgrid completion fish | source

PowerShell:
  PS> erpgrid completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return rootCmd.GenBashCompletion(out)
			case "zsh":
				return rootCmd.GenZshCompletion(out)
			case "fish":
				return rootCmd.GenFishCompletion(out, true)
			case "powershell":
				return rootCmd.GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "erpgrid version %s\n", Version)
			fmt.Fprintf(out, "  commit: %s\n", CommitSHA)
			fmt.Fprintf(out, "  built:  %s\n", BuildDate)
		},
	}
}
