// cmd/client/cmd/root.go
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/exp/slog"

	"telemim/cmd/client/cmd/auth"
	"telemim/cmd/client/cmd/records"
	"telemim/cmd/client/cmd/types"
	"telemim/internal/app/client"
	"telemim/internal/app/client/config"
	"telemim/internal/utils/logger"
)

var (
	cfgFile   string
	cfg       *config.Config
	log       *slog.Logger
	app       *client.App
	serverURL string
)

var rootCmd = &cobra.Command{
	Use:   "telemim",
	Short: "Telemim - клиент табличного шлюза",
	Long: `Telemim - клиент для работы с таблицами сервера Telemim:
создание, просмотр, изменение и удаление записей, вход сотрудника.`,
	PersistentPreRunE: setupApp,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка: %v\n", err)
		os.Exit(1)
	}
}

func setupApp(cmd *cobra.Command, _ []string) error {
	// Загружаем конфигурацию
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}

	// Переопределяем настройки из флагов командной строки
	if serverURL != "" {
		cfg.ServerAddress = serverURL
	}

	log = logger.New(cfg.Env)
	app = client.New(cfg, log)

	cmd.SetContext(context.WithValue(cmd.Context(), types.ClientAppKey, app))
	return nil
}

func init() {
	// Глобальные флаги
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "конфигурационный файл")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "адрес сервера Telemim (host:port)")

	rootCmd.AddCommand(auth.AuthCmd)
	auth.AuthCmd.AddCommand(auth.LoginCmd)

	rootCmd.AddCommand(records.RecordsCmd)
	records.RecordsCmd.AddCommand(records.CreateCmd)
	records.RecordsCmd.AddCommand(records.ListCmd)
	records.RecordsCmd.AddCommand(records.UpdateCmd)
	records.RecordsCmd.AddCommand(records.DeleteCmd)
}
