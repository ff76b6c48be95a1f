package cli

import (
	"recruitment-backend/initializers"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Миграция структуры БД и триггеров оповещения",
		RunE: func(cmd *cobra.Command, args []string) error {
			initializers.InitBase()
			initializers.InitDBConnection(true)
			log.Info("миграция завершена")
			return nil
		},
	}
}
