package report

import (
	"fmt"
	"strings"

	"github.com/adil-farooq/solana-lending-agent/internal/catalog"
	"github.com/adil-farooq/solana-lending-agent/internal/intent"
)

// sourceNote is the trailing summary block naming the data source,
// appended to every tabular report.
var sourceNote = fmt.Sprintf("\n---\n*Data source: `solana.lending_positions` (%s lending on %s, %s onward)*\n",
	catalog.Project, catalog.Chain, catalog.SupportedStartDate)

// Help returns the capability overview shown for help intents.
func Help() string {
	var b strings.Builder
	b.WriteString("## Lending Position Agent\n\n")
	b.WriteString("I answer questions about historical lending positions of a Solana wallet. Try:\n\n")
	fmt.Fprintf(&b, "- **Snapshot** — `What did %s hold on 2025-09-30?`\n", intent.ExampleAddress)
	fmt.Fprintf(&b, "- **Range** — `Show history for %s from 2025-09-01 to 2025-09-30`\n", intent.ExampleAddress)
	fmt.Fprintf(&b, "- **Comparison** — `Compare %s on 2025-09-30 vs 2025-12-31`\n", intent.ExampleAddress)
	fmt.Fprintf(&b, "\nSupported tokens: %s.\n", strings.Join(catalog.Symbols(), ", "))
	fmt.Fprintf(&b, "Supported dates: %s through today.\n", catalog.SupportedStartDate)
	return b.String()
}

// Error wraps a guidance message for error intents. Recoverable conditions
// always come back as a normal report, never a transport failure.
func Error(message string) string {
	if message == "" {
		message = "I couldn't understand that request."
	}
	return fmt.Sprintf("%s\n\nAsk for \"help\" to see example questions.\n", message)
}
