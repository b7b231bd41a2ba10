package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"telemim/internal/app/server/config"
	"telemim/internal/domain/sheet"
	"telemim/internal/infrastructure/lock"
	"telemim/internal/infrastructure/storage"
)

var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "Управление таблицами",
}

var tableCreateCmd = &cobra.Command{
	Use:   "create <name> <column[:type]>...",
	Short: "Создать таблицу",
	Long: `Создает таблицу с заголовком из перечисленных колонок.
Первая колонка хранит идентификатор записи.
Типы колонок: any (по умолчанию), string, number, boolean.

Пример:
  telemim-server table create Moradores id name:string unit:string`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		schema := make(sheet.Schema, 0, len(args)-1)
		for _, spec := range args[1:] {
			col, err := sheet.ParseColumn(spec)
			if err != nil {
				return err
			}
			schema = append(schema, col)
		}

		svc, closeStore, err := sheetService(cmd)
		if err != nil {
			return err
		}
		defer closeStore()

		if err := svc.CreateTable(cmd.Context(), args[0], schema); err != nil {
			return err
		}
		color.Green("✓ таблица %s создана (%d колонок)", args[0], len(schema))
		return nil
	},
}

var tableListCmd = &cobra.Command{
	Use:   "list",
	Short: "Список таблиц",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		svc, closeStore, err := sheetService(cmd)
		if err != nil {
			return err
		}
		defer closeStore()

		names, err := svc.ListTables(cmd.Context())
		if err != nil {
			return err
		}
		if len(names) == 0 {
			fmt.Println("Таблицы не найдены")
			return nil
		}
		for _, name := range names {
			schema, err := svc.Schema(cmd.Context(), name)
			if err != nil {
				color.Red("%s: %v", name, err)
				continue
			}
			fmt.Printf("%s\t%v\n", color.CyanString(name), schema.Names())
		}
		return nil
	},
}

var errVolatileStorage = errors.New("STORAGE_DRIVER=memory не сохраняет таблицы между запусками, используйте sqlite или postgres")

// persistentStorage отклоняет хранилище, которое исчезнет вместе с процессом команды
func persistentStorage(c *config.Config) error {
	if c.Storage.Driver == config.DriverMemory {
		return errVolatileStorage
	}
	return nil
}

func sheetService(cmd *cobra.Command) (*sheet.Service, func(), error) {
	if err := persistentStorage(cfg); err != nil {
		return nil, nil, err
	}
	store, err := storage.Open(cmd.Context(), cfg, log)
	if err != nil {
		return nil, nil, err
	}
	closeStore := func() {
		if err := store.Close(); err != nil {
			log.Error("failed to close storage", "error", err)
		}
	}
	return sheet.NewService(store, lock.NewLocal(), sheet.NewClockIDGenerator(time.Now), log), closeStore, nil
}
