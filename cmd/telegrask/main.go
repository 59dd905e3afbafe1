package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/samedamci/telegrask/core/buildinfo"
	"github.com/samedamci/telegrask/core/scaffold"
)

var rootCmd = &cobra.Command{
	Use:   "telegrask",
	Short: "telegrask is a thin ergonomic layer over telebot",
	Long: `telegrask wraps gopkg.in/telebot.v4 with explicit handler registration,
an auto-generated help command, and a scaffolder for new bot projects.`,
}

var (
	noEnv       bool
	noVenv      bool
	noGitignore bool
)

var initCmd = &cobra.Command{
	Use:   "init <project_name>",
	Short: "Create a new bot project scaffold",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return scaffold.Run(scaffoldOptions(args[0]))
	},
}

func scaffoldOptions(name string) scaffold.Options {
	return scaffold.Options{
		Name:      name,
		Env:       !(noEnv || noVenv),
		Gitignore: !noGitignore,
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("telegrask %s (%s %s)\n", buildinfo.Version, buildinfo.Commit, buildinfo.Date)
	},
}

func init() {
	initCmd.Flags().BoolVar(&noEnv, "no-env", false, "skip creating the local environment directory")
	initCmd.Flags().BoolVar(&noVenv, "no-venv", false, "alias for --no-env")
	_ = initCmd.Flags().MarkHidden("no-venv")
	initCmd.Flags().BoolVar(&noGitignore, "no-gitignore", false, "skip writing .gitignore")
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.SilenceUsage = true
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
