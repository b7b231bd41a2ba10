// cmd/client/cmd/records/list.go
package records

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"telemim/internal/domain/sheet"
)

var listFormat string

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "Список записей таблицы",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}

		recs, err := app.List(cmd.Context(), table)
		if err != nil {
			return fmt.Errorf("ошибка получения списка записей: %w", err)
		}

		switch listFormat {
		case "json":
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			return encoder.Encode(recs)
		default:
			return printRecordsTable(os.Stdout, recs)
		}
	},
}

// printRecordsTable печатает записи колонками; id всегда первой.
func printRecordsTable(out io.Writer, recs []sheet.Record) error {
	if len(recs) == 0 {
		fmt.Fprintln(out, "Записи не найдены")
		return nil
	}

	seen := map[string]struct{}{"id": {}}
	var columns []string
	for _, rec := range recs {
		for name := range rec {
			if _, ok := seen[name]; !ok {
				seen[name] = struct{}{}
				columns = append(columns, name)
			}
		}
	}
	sort.Strings(columns)
	columns = append([]string{"id"}, columns...)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, name := range columns {
		fmt.Fprintf(w, "%s\t", name)
	}
	fmt.Fprintln(w)
	for _, rec := range recs {
		for _, name := range columns {
			fmt.Fprintf(w, "%s\t", truncate(sheet.CellString(rec[name]), 30))
		}
		fmt.Fprintln(w)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "\nВсего записей: %d\n", len(recs))
	return nil
}

func truncate(s string, length int) string {
	if len(s) <= length {
		return s
	}
	return s[:length-3] + "..."
}

func init() {
	ListCmd.Flags().StringVarP(&table, "table", "t", "", "имя таблицы")
	ListCmd.Flags().StringVarP(&listFormat, "format", "f", "table", "формат вывода (table, json)")
	_ = ListCmd.MarkFlagRequired("table")
}
