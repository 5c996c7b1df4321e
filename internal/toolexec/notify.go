// internal/toolexec/notify.go
package toolexec

import (
	"context"
	"fmt"

	"assistant-engine/internal/common/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	sestypes "github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// EmailSender is the slice of the SES client the email tool needs.
type EmailSender interface {
	SendEmail(ctx context.Context, input *ses.SendEmailInput) (*ses.SendEmailOutput, error)
}

// SMSPublisher is the slice of the SNS client the SMS tool needs.
type SMSPublisher interface {
	Publish(ctx context.Context, input *sns.PublishInput) (*sns.PublishOutput, error)
}

// SendMessageTool delivers a composed message over the channel the
// resolver picked: "email" goes through SES, "sms" through SNS.
// Expects args: channel, address, message_body; optional subject.
func SendMessageTool(email EmailSender, sms SMSPublisher, fromEmail string) ToolFunc {
	return func(ctx context.Context, args Args) (Result, error) {
		switch args["channel"] {
		case "email":
			return sendEmail(ctx, email, fromEmail, args)
		case "sms":
			return sendSMS(ctx, sms, args)
		default:
			return nil, errors.NewNotificationSendFailedError(args["channel"],
				fmt.Errorf("unsupported channel %q", args["channel"]))
		}
	}
}

// EmailTool sends over SES regardless of channel. Used for steps whose
// output is always an email, like booking confirmations.
func EmailTool(email EmailSender, fromEmail string) ToolFunc {
	return func(ctx context.Context, args Args) (Result, error) {
		return sendEmail(ctx, email, fromEmail, args)
	}
}

func sendEmail(ctx context.Context, client EmailSender, from string, args Args) (Result, error) {
	subject := args["subject"]
	if subject == "" {
		subject = "Update from your service team"
	}
	input := &ses.SendEmailInput{
		Source: aws.String(from),
		Destination: &sestypes.Destination{
			ToAddresses: []string{args["address"]},
		},
		Message: &sestypes.Message{
			Subject: &sestypes.Content{Data: aws.String(subject)},
			Body: &sestypes.Body{
				Text: &sestypes.Content{Data: aws.String(args["message_body"])},
			},
		},
	}
	out, err := client.SendEmail(ctx, input)
	if err != nil {
		return nil, errors.NewNotificationSendFailedError("email", err)
	}
	result := Result{"status": "sent", "channel": "email"}
	if out != nil && out.MessageId != nil {
		result["message_id"] = *out.MessageId
	}
	return result, nil
}

func sendSMS(ctx context.Context, client SMSPublisher, args Args) (Result, error) {
	input := &sns.PublishInput{
		PhoneNumber: aws.String(args["address"]),
		Message:     aws.String(args["message_body"]),
	}
	out, err := client.Publish(ctx, input)
	if err != nil {
		return nil, errors.NewNotificationSendFailedError("sms", err)
	}
	result := Result{"status": "sent", "channel": "sms"}
	if out != nil && out.MessageId != nil {
		result["message_id"] = *out.MessageId
	}
	return result, nil
}
