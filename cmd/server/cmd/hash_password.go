package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"telemim/internal/domain/user"
)

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password",
	Short: "Вывести bcrypt-хеш пароля для колонки password",
	Long: `Используется при PASSWORD_HASHING=true: полученный хеш записывается
в колонку password таблицы сотрудников.`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		fmt.Fprint(os.Stderr, "Пароль: ")
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			return fmt.Errorf("ошибка чтения пароля: %w", err)
		}
		fmt.Fprintln(os.Stderr)

		if len(password) == 0 {
			return errors.New("пароль не может быть пустым")
		}

		hash, err := user.HashPassword(string(password))
		if err != nil {
			return err
		}
		fmt.Println(hash)
		return nil
	},
}
