package mailer

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"adf-relay/internal/common/logger"
)

// SESAPI is the slice of the SES client the sender needs.
type SESAPI interface {
	SendRawEmail(ctx context.Context, params *ses.SendRawEmailInput, optFns ...func(*ses.Options)) (*ses.SendRawEmailOutput, error)
}

// SESSender submits the raw MIME message through Amazon SES. SendRawEmail is
// required because the message carries an attachment.
type SESSender struct {
	api SESAPI
	log logger.Logger
}

func NewSESSender(ctx context.Context, region string, log logger.Logger) (*SESSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}
	return &SESSender{api: ses.NewFromConfig(cfg), log: log}, nil
}

// NewSESSenderWithAPI wires a prebuilt API client, used by tests.
func NewSESSenderWithAPI(api SESAPI, log logger.Logger) *SESSender {
	return &SESSender{api: api, log: log}
}

func (s *SESSender) Provider() string {
	return "ses"
}

func (s *SESSender) Send(ctx context.Context, msg Message) error {
	out, err := s.api.SendRawEmail(ctx, &ses.SendRawEmailInput{
		RawMessage:   &types.RawMessage{Data: msg.Build()},
		Source:       &msg.From,
		Destinations: []string{msg.To},
	})
	if err != nil {
		return fmt.Errorf("SES send failed: %w", err)
	}

	if out.MessageId != nil {
		s.log.Debug("SES accepted message", map[string]interface{}{
			"messageId": *out.MessageId,
		})
	}
	return nil
}
