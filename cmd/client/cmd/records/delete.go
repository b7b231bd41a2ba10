package records

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var DeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Удалить запись",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}
		if err := app.Delete(cmd.Context(), table, id); err != nil {
			return err
		}
		color.Yellow("✓ Запись %s удалена", id)
		return nil
	},
}

func init() {
	DeleteCmd.Flags().StringVarP(&table, "table", "t", "", "имя таблицы")
	DeleteCmd.Flags().StringVar(&id, "id", "", "идентификатор записи")
	_ = DeleteCmd.MarkFlagRequired("table")
	_ = DeleteCmd.MarkFlagRequired("id")
}
