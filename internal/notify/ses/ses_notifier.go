package ses

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"rfpflow/internal/config"
	"rfpflow/internal/domain"
	"rfpflow/internal/notify"
	"rfpflow/internal/port"
)

type sesNotifier struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
	recipients  []string
}

// NewSESNotifier creates a new SES-backed ProposalNotifier.
func NewSESNotifier(cfg *config.NotifyConfig) (port.ProposalNotifier, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	return newNotifier(sesv2.NewFromConfig(awsCfg), cfg), nil
}

func newNotifier(client *sesv2.Client, cfg *config.NotifyConfig) *sesNotifier {
	return &sesNotifier{
		client:      client,
		fromAddress: cfg.FromAddress,
		fromName:    cfg.FromName,
		recipients:  cfg.Recipients,
	}
}

// NotifyProposalReady mails the sales desk. With no recipients configured it
// does nothing.
func (s *sesNotifier) NotifyProposalReady(ctx context.Context, result *domain.RunResult) error {
	if len(s.recipients) == 0 {
		return nil
	}
	msg := notify.ProposalReady(result)
	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: s.recipients,
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &msg.Subject},
				Body: &types.Body{
					Html: &types.Content{Data: &msg.HTML},
					Text: &types.Content{Data: &msg.Text},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}
