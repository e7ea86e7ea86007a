package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/0x9900/enlil/internal/precommit"
)

var (
	hooksConfigFile string

	hooksCmd = &cobra.Command{
		Use:   "hooks",
		Short: "Manage the pre-commit hook configuration",
		Long: `Manage the pre-commit hook configuration document consumed by the
external pre-commit runner: a list of source repositories, each pinned
to a revision and declaring one or more hooks.`,
	}

	hooksValidateCmd = &cobra.Command{
		Use:   "validate",
		Short: "Check the hook configuration for structural problems",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := precommit.Load(hooksConfigFile)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("%s: %w", hooksConfigFile, err)
			}
			fmt.Fprintf(outWriter(), "%s: OK (%d hooks from %d repositories)\n",
				hooksConfigFile, len(cfg.HookIDs()), len(cfg.Repos))
			return nil
		},
	}

	hooksListCmd = &cobra.Command{
		Use:   "list",
		Short: "List the configured hooks",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := precommit.Load(hooksConfigFile)
			if err != nil {
				return err
			}
			out := outWriter()
			for _, repo := range cfg.Repos {
				if repo.Rev != "" {
					fmt.Fprintf(out, "%s @ %s\n", repo.Repo, repo.Rev)
				} else {
					fmt.Fprintf(out, "%s\n", repo.Repo)
				}
				for _, hook := range repo.Hooks {
					fmt.Fprintf(out, "  %s", hook.ID)
					if len(hook.Args) > 0 {
						fmt.Fprintf(out, " (%s)", strings.Join(hook.Args, " "))
					}
					fmt.Fprintln(out)
				}
			}
			return nil
		},
	}

	hooksInstallCmd = &cobra.Command{
		Use:   "install",
		Short: "Install the git pre-commit hook script",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := precommit.Load(hooksConfigFile)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("%s: %w", hooksConfigFile, err)
			}
			hookPath, err := precommit.Install(".")
			if err != nil {
				return err
			}
			fmt.Fprintf(outWriter(), "Hook installed at %s\n", hookPath)
			return nil
		},
	}

	hooksRunCmd = &cobra.Command{
		Use:   "run [hook-id]",
		Short: "Run the external pre-commit runner",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runnerArgs := []string{"run", "--config", hooksConfigFile}
			if len(args) == 1 {
				runnerArgs = append(runnerArgs, args[0])
			}
			return precommit.Run(cmd.Context(), runnerArgs...)
		},
	}
)

func init() {
	hooksCmd.PersistentFlags().StringVar(&hooksConfigFile, "hooks-config",
		precommit.DefaultConfigFile, "Hook configuration file")
	hooksCmd.AddCommand(hooksValidateCmd, hooksListCmd, hooksInstallCmd, hooksRunCmd)
	rootCmd.AddCommand(hooksCmd)
}
