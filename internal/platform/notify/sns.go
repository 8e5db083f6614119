package notify

import (
	"context"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"

	"github.com/bookbazaar/bookbazaar-api/internal/config"
	"github.com/bookbazaar/bookbazaar-api/internal/platform/logger"
)

const notificationSubject = "BookBazaar Order Update"

// PublishAPI is the subset of the SNS client the publisher needs.
type PublishAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNS publishes notifications to an SNS topic. The recipient's email rides
// along as a message attribute so topic subscribers can filter on it.
type SNS struct {
	client   PublishAPI
	topicARN string
}

// NewSNS creates a topic publisher.
func NewSNS(client PublishAPI, topicARN string) *SNS {
	return &SNS{client: client, topicARN: topicARN}
}

// Send implements Notifier. Publish failures are logged, never returned.
func (s *SNS) Send(ctx context.Context, email, message string) {
	_, err := s.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(s.topicARN),
		Subject:  aws.String(notificationSubject),
		Message:  aws.String(message),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"email": {
				DataType:    aws.String("String"),
				StringValue: aws.String(email),
			},
		},
	})
	if err != nil {
		logger.FromContext(ctx).Warn("sns publish failed, notification dropped",
			slog.String("email", email),
			slog.String("error", err.Error()))
		return
	}

	logger.FromContext(ctx).Info("notification published",
		slog.String("email", email))
}

// NewFromConfig selects the notifier implementation: an SNS publisher when a
// real topic ARN is configured, otherwise the log-only local notifier. The
// placeholder ARN from .env templates counts as unconfigured.
func NewFromConfig(awsCfg aws.Config, cfg config.AWSConfig) Notifier {
	if cfg.SNSTopicARN == "" || cfg.SNSTopicARN == config.PlaceholderTopicARN {
		return NewLocal()
	}
	return NewSNS(sns.NewFromConfig(awsCfg), cfg.SNSTopicARN)
}
