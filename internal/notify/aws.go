package notify

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	sestypes "github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	snstypes "github.com/aws/aws-sdk-go-v2/service/sns/types"

	"github.com/mpcbarbosa/SeniorCare/config"
	"github.com/mpcbarbosa/SeniorCare/internal/model"
)

// SNSPublisher is the subset of the SNS client used for SMS.
type SNSPublisher interface {
	Publish(ctx context.Context, in *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SESSender is the subset of the SES client used for e-mail.
type SESSender interface {
	SendEmail(ctx context.Context, in *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// LoadAWS resolves credentials and region through the default chain.
func LoadAWS(ctx context.Context, cfg *config.NotifyConfig) (aws.Config, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		return aws.Config{}, fmt.Errorf("load aws config: %w", err)
	}
	return awsCfg, nil
}

// ── sms ──

type SMS struct {
	client   SNSPublisher
	senderID string
}

func NewSMS(client SNSPublisher, senderID string) *SMS {
	return &SMS{client: client, senderID: senderID}
}

// NewSMSFromConfig builds the SNS client from an AWS config.
func NewSMSFromConfig(awsCfg aws.Config, cfg *config.NotifyConfig) *SMS {
	return NewSMS(sns.NewFromConfig(awsCfg), cfg.SMSSenderID)
}

func (s *SMS) Name() string { return model.ChannelSMS }

func (s *SMS) Address(r Recipient) string { return r.Phone }

func (s *SMS) Send(ctx context.Context, r Recipient, msg Message) error {
	if r.Phone == "" {
		return ErrNoAddress
	}
	attrs := map[string]snstypes.MessageAttributeValue{
		"AWS.SNS.SMS.SMSType": {DataType: aws.String("String"), StringValue: aws.String("Transactional")},
	}
	if s.senderID != "" {
		attrs["AWS.SNS.SMS.SenderID"] = snstypes.MessageAttributeValue{
			DataType: aws.String("String"), StringValue: aws.String(s.senderID),
		}
	}
	_, err := s.client.Publish(ctx, &sns.PublishInput{
		PhoneNumber:       aws.String(r.Phone),
		Message:           aws.String(msg.Body),
		MessageAttributes: attrs,
	})
	if err != nil {
		return fmt.Errorf("sns publish: %w", err)
	}
	return nil
}

// ── email ──

type Email struct {
	client SESSender
	from   string
}

func NewEmail(client SESSender, from string) *Email {
	return &Email{client: client, from: from}
}

func NewEmailFromConfig(awsCfg aws.Config, cfg *config.NotifyConfig) *Email {
	return NewEmail(ses.NewFromConfig(awsCfg), cfg.EmailFrom)
}

func (e *Email) Name() string { return model.ChannelEmail }

func (e *Email) Address(r Recipient) string { return r.Email }

func (e *Email) Send(ctx context.Context, r Recipient, msg Message) error {
	if r.Email == "" {
		return ErrNoAddress
	}
	_, err := e.client.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &sestypes.Destination{ToAddresses: []string{r.Email}},
		Message: &sestypes.Message{
			Subject: &sestypes.Content{Data: aws.String(msg.Subject), Charset: aws.String("UTF-8")},
			Body: &sestypes.Body{
				Text: &sestypes.Content{Data: aws.String(msg.Body), Charset: aws.String("UTF-8")},
			},
		},
		Source: aws.String(e.from),
	})
	if err != nil {
		return fmt.Errorf("ses send: %w", err)
	}
	return nil
}
