package records

import (
	"errors"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var UpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Обновить запись",
	Long: `Перезаписывает только переданные колонки записи с указанным ID.

Пример:
  telemim records update -t Moradores --id 1760000000000 --set unit=14C`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}
		if len(fields) == 0 {
			return errors.New("нужно передать хотя бы одно --set column=value")
		}
		data, err := parseFields(fields)
		if err != nil {
			return err
		}

		if err := app.Update(cmd.Context(), table, id, data); err != nil {
			return err
		}
		color.Green("✅ Запись %s обновлена", id)
		return nil
	},
}

func init() {
	UpdateCmd.Flags().StringVarP(&table, "table", "t", "", "имя таблицы")
	UpdateCmd.Flags().StringVar(&id, "id", "", "идентификатор записи")
	UpdateCmd.Flags().StringArrayVar(&fields, "set", nil, "значение колонки column=value (можно повторять)")
	_ = UpdateCmd.MarkFlagRequired("table")
	_ = UpdateCmd.MarkFlagRequired("id")
}
