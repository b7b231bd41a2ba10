// cmd/client/cmd/auth/login.go
package auth

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"telemim/cmd/client/cmd/types"
	"telemim/internal/app/client"
)

var email string

var LoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Войти как сотрудник",
	Long: `Проверяет email и пароль по таблице сотрудников и выводит
найденную запись без скрытых полей.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if !ok || app == nil {
			return fmt.Errorf("приложение не инициализировано")
		}

		if email == "" {
			fmt.Print("Email: ")
			_, _ = fmt.Scanln(&email)
		}

		fmt.Print("Пароль: ")
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			return fmt.Errorf("ошибка чтения пароля: %w", err)
		}
		fmt.Println()

		rec, err := app.Login(cmd.Context(), email, string(password))
		if err != nil {
			return fmt.Errorf("ошибка аутентификации: %w", err)
		}

		color.Green("✅ Вход выполнен успешно!")
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(rec)
	},
}

func init() {
	LoginCmd.Flags().StringVarP(&email, "email", "e", "", "email сотрудника")
}
