package intent

import (
	"fmt"
	"strings"

	"github.com/adil-farooq/solana-lending-agent/internal/catalog"
)

// intentShapesDescription is the fixed instruction describing the five intent
// shapes the LLM must choose between. Kept in sync with the Intent struct.
const intentShapesDescription = `
Intent kinds and their required fields:
  - snapshot:   {"kind":"snapshot","address":"<wallet>","date":"YYYY-MM-DD","protocol":"<optional>"}
  - range:      {"kind":"range","address":"<wallet>","start_date":"YYYY-MM-DD","end_date":"YYYY-MM-DD","protocol":"<optional>"}
  - comparison: {"kind":"comparison","address":"<wallet>","date1":"YYYY-MM-DD","date2":"YYYY-MM-DD","protocol":"<optional>"}
  - help:       {"kind":"help"}
  - error:      {"kind":"error","message":"<why the question cannot be answered>"}
`

// buildPrompt assembles the full instruction sent to the LLM for one utterance.
func buildPrompt(utterance string) string {
	return fmt.Sprintf(`
You classify questions about historical DeFi lending positions on %s (%s lending).

%s
Rules:
- Reply with EXACTLY one JSON object and nothing else. No prose, no code fences.
- Dates must be calendar dates in YYYY-MM-DD form.
- Supported tokens: %s.
- Supported date range: %s through today.
- If the question is a greeting or asks what you can do, use kind "help".
- If a wallet address or required date is missing, use kind "error" with a short message.

User question:
%s
`, catalog.Chain, catalog.Project, intentShapesDescription,
		strings.Join(catalog.Symbols(), ", "), catalog.SupportedStartDate, utterance)
}
