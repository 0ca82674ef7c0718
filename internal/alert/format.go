package alert

import (
	"fmt"
	"strings"

	"github.com/isometry/line-alert-relay/internal/helpers"
)

// DefaultTruncateAt is the maximum number of characters of the original message quoted in an alert.
const DefaultTruncateAt = 100

// Format builds the alert body. It is pure: identical inputs produce identical output.
func Format(keyword Keyword, sender Sender, location Location, text string, truncateAt int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "⚠️ Keyword alert: \"%s\"\n", keyword)
	fmt.Fprintf(&b, "From: %s\n", sender)
	fmt.Fprintf(&b, "In: %s\n", location)
	fmt.Fprintf(&b, "Message: \"%s\"", helpers.Truncate(text, truncateAt))
	return b.String()
}
