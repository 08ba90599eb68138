// Package ses delivers end-of-run reports over AWS SESv2.
package ses

import (
	"context"
	"fmt"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"invoicegen/internal/domain"
	"invoicegen/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
	toAddress   string
}

// NewSESSender creates a new SES-backed EmailSender. Every run report
// goes to the single configured billing operations address.
func NewSESSender(region, fromAddress, fromName, toAddress string) (port.EmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	client := sesv2.NewFromConfig(cfg)
	return &sesSender{
		client:      client,
		fromAddress: fromAddress,
		fromName:    fromName,
		toAddress:   toAddress,
	}, nil
}

func (s *sesSender) SendRunReport(ctx context.Context, run *domain.InvoiceRun) error {
	if s.toAddress == "" {
		return nil
	}

	subject := fmt.Sprintf("Invoice run %s for %s: %s", run.ID, run.Period, run.Status)
	textBody := buildReportText(run)
	htmlBody := buildReportHTML(run)
	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{s.toAddress},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

func buildReportText(run *domain.InvoiceRun) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Invoice run %s\nPeriod: %s\nStatus: %s\n\n", run.ID, run.Period, run.Status)
	for i := range run.Outcomes {
		o := &run.Outcomes[i]
		if o.Status == domain.OutcomeStatusGenerated {
			fmt.Fprintf(&b, "%s: generated %s\n", o.OrganizationName, o.ReportName)
		} else {
			fmt.Fprintf(&b, "%s: FAILED (%s)\n", o.OrganizationName, o.Detail)
		}
	}
	return b.String()
}

func buildReportHTML(run *domain.InvoiceRun) string {
	var rows strings.Builder
	for i := range run.Outcomes {
		o := &run.Outcomes[i]
		detail := o.ReportName
		if o.Status != domain.OutcomeStatusGenerated {
			detail = o.Detail
		}
		fmt.Fprintf(&rows,
			`<tr><td style="padding: 4px 8px;">%s</td><td style="padding: 4px 8px;">%s</td><td style="padding: 4px 8px;">%s</td></tr>`,
			o.OrganizationName, o.Status, detail)
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Invoice run %s</h2>
  <p>Period: %s<br>Status: %s</p>
  <table style="border-collapse: collapse; width: 100%%;">
    <tr><th style="text-align: left; padding: 4px 8px;">Organization</th><th style="text-align: left; padding: 4px 8px;">Status</th><th style="text-align: left; padding: 4px 8px;">Detail</th></tr>
    %s
  </table>
</body>
</html>`, run.ID, run.Period, run.Status, rows.String())
}
