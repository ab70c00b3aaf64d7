package notifier

import (
	"fmt"
	"strings"
)

// FormatFields renders one field per line, "key: value", matching the
// message layout earlier deployments posted to the channel.
func FormatFields(fields []Field) string {
	if len(fields) == 0 {
		return ""
	}
	var b strings.Builder
	for i, f := range fields {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(f.Key)
		b.WriteString(": ")
		b.WriteString(fmt.Sprintf("%v", f.Value))
	}
	return b.String()
}
