package records

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var CreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Создать запись",
	Long: `Добавляет запись в конец таблицы. Не переданные колонки заполняются
пустой строкой.

Пример:
  telemim records create -t Moradores --set name=Ana --set unit=12B`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}
		data, err := parseFields(fields)
		if err != nil {
			return err
		}

		newID, err := app.Create(cmd.Context(), table, data)
		if err != nil {
			return err
		}
		color.Green("✅ Запись создана, ID: %d", newID)
		return nil
	},
}

func init() {
	CreateCmd.Flags().StringVarP(&table, "table", "t", "", "имя таблицы")
	CreateCmd.Flags().StringArrayVar(&fields, "set", nil, "значение колонки column=value (можно повторять)")
	_ = CreateCmd.MarkFlagRequired("table")
}
