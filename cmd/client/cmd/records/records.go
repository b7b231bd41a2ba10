package records

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"telemim/cmd/client/cmd/types"
	"telemim/internal/app/client"
)

// RecordsCmd - родительская команда для всех операций с записями
var RecordsCmd = &cobra.Command{
	Use:   "records",
	Short: "Управление записями",
	Long:  `Создание, просмотр, обновление и удаление записей таблиц.`,
}

var (
	table  string
	id     string
	fields []string
)

func appFrom(cmd *cobra.Command) (*client.App, error) {
	app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
	if !ok || app == nil {
		return nil, fmt.Errorf("приложение не инициализировано")
	}
	return app, nil
}

// parseFields разбирает пары column=value. Значение, являющееся JSON-литералом
// (число, true/false, null, строка в кавычках), передается как есть,
// остальное передается строкой.
func parseFields(pairs []string) (map[string]any, error) {
	data := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		name, raw, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("ожидается column=value, получено %q", pair)
		}
		data[name] = parseValue(raw)
	}
	return data, nil
}

func parseValue(raw string) any {
	var v any
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil || dec.More() {
		return raw
	}
	switch v.(type) {
	case map[string]any, []any:
		return raw
	}
	return v
}
