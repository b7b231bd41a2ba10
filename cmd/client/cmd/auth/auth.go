package auth

import (
	"github.com/spf13/cobra"
)

// AuthCmd - родительская команда для операций входа сотрудника
var AuthCmd = &cobra.Command{
	Use:   "auth",
	Short: "Вход сотрудника",
	Long:  `Проверка email и пароля по таблице сотрудников.`,
}
