package diagnose

import (
	"fmt"
	"strings"
)

// Format renders the diagnosis as markdown. Technical details of the cause
// are only included when showDetails is set.
func (d *Diagnosis) Format(showDetails bool) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "❌ **%s** (%s error)\n\n", d.Message, d.Kind.Label())

	sb.WriteString("💡 **Suggestions to resolve this issue:**\n")
	for i, s := range d.Suggestions {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, s)
	}

	if showDetails && d.Cause != nil {
		fmt.Fprintf(&sb, "\n🔍 **Technical details:** %v", d.Cause)
	}

	return sb.String()
}
