package cli

import (
	"github.com/spf13/cobra"
)

func NewRootCommand() *cobra.Command {
	serveCmd := newServeCommand()
	rootCmd := &cobra.Command{
		Use:           "recruitment-backend",
		Short:         "Сервис подбора кандидатов",
		SilenceUsage:  true,
		SilenceErrors: true,
		// без подкоманды запускается API
		RunE: serveCmd.RunE,
	}
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(newMigrateCommand())
	rootCmd.AddCommand(newPipelineCommand())
	return rootCmd
}
