//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

const tablePadding = 2

// WriteTable prints rows as aligned columns under headers.
func WriteTable(out io.Writer, headers []string, rows [][]string) error {
	writer := tabwriter.NewWriter(out, 0, 0, tablePadding, ' ', tabwriter.StripEscape)
	if len(headers) > 0 {
		fmt.Fprintln(writer, strings.Join(headers, "\t"))
	}

	for _, row := range rows {
		fmt.Fprintln(writer, strings.Join(row, "\t"))
	}

	return writer.Flush()
}

// FormatYesNo renders a flag for table output.
func FormatYesNo(value bool) string {
	if value {
		return "yes"
	}

	return "no"
}
