// Package notify builds the "proposal ready" message shared by the notifier
// implementations.
package notify

import (
	"fmt"
	"html"

	"rfpflow/internal/domain"
)

// Message is a rendered notification.
type Message struct {
	Subject string
	Text    string
	HTML    string
}

// ProposalReady renders the message for a completed run.
func ProposalReady(result *domain.RunResult) Message {
	title := domain.NotAvailable
	contractID := domain.NotAvailable
	if s := result.Workflow.Sales; s != nil {
		title = s.RfpMetadata.Title
		contractID = s.RfpMetadata.ContractID
	}
	match := 0
	if t := result.Workflow.Technical; t != nil {
		match = t.OverallMatchPercent
	}
	total, currency := "0.00", ""
	if p := result.Workflow.Pricing; p != nil {
		total, currency = p.TotalCost.String(), p.Currency
	}

	subject := fmt.Sprintf("Proposal ready: %s", title)
	text := fmt.Sprintf("A proposal is ready for review.\n\nRun: %s\nTitle: %s\nContract ID: %s\nTechnical match: %d%%\nGrand total: %s %s\n",
		result.ID, title, contractID, match, total, currency)
	body := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Proposal ready for review</h2>
  <table>
    <tr><td>Run</td><td>%s</td></tr>
    <tr><td>Title</td><td>%s</td></tr>
    <tr><td>Contract ID</td><td>%s</td></tr>
    <tr><td>Technical match</td><td>%d%%</td></tr>
    <tr><td>Grand total</td><td>%s %s</td></tr>
  </table>
  <pre style="background: #f6f6f6; padding: 12px; white-space: pre-wrap;">%s</pre>
</body>
</html>`, result.ID, html.EscapeString(title), html.EscapeString(contractID), match,
		total, html.EscapeString(currency), html.EscapeString(result.FinalDocument))

	return Message{Subject: subject, Text: text, HTML: body}
}
