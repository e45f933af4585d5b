package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/opencode-ai/thememode/internal/binding"
)

const tablePadding = 2

func writeTable(out io.Writer, headers []string, rows [][]string) error {
	writer := tabwriter.NewWriter(out, 0, 0, tablePadding, ' ', tabwriter.StripEscape)
	if len(headers) > 0 {
		fmt.Fprintln(writer, strings.Join(headers, "\t"))
	}
	for _, row := range rows {
		fmt.Fprintln(writer, strings.Join(row, "\t"))
	}
	return writer.Flush()
}

func formatYesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}

// WriteOutput writes v as a single line of JSON.
func WriteOutput(out io.Writer, v any) error {
	return json.NewEncoder(out).Encode(v)
}

type stateOutput struct {
	Mode  string `json:"mode"`
	Theme string `json:"theme"`
}

func writeState(out io.Writer, state binding.State) error {
	if IsJSONOutput() {
		return WriteOutput(out, stateOutput{Mode: string(state.Mode), Theme: string(state.Theme)})
	}
	return writeTable(out, nil, [][]string{
		{"mode:", string(state.Mode)},
		{"theme:", string(state.Theme)},
	})
}
