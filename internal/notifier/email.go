package notifier

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/rs/zerolog"
)

// awsNotifier implements Notifier on SES for email and SNS for SMS.
type awsNotifier struct {
	ses        *sesv2.Client
	sns        *sns.Client
	fromEmail  string
	adminEmail string
	smsEnabled bool
	logger     zerolog.Logger
}

// Config holds notifier settings.
type Config struct {
	Region     string
	FromEmail  string
	AdminEmail string
	SMSEnabled bool
}

// NewAWSNotifier creates a Notifier backed by SES and SNS in the given region.
func NewAWSNotifier(ctx context.Context, cfg Config, logger zerolog.Logger) (Notifier, error) {
	logger = logger.With().Str("component", "notifier").Logger()

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		logger.Error().Err(err).Msg("failed to load AWS configuration")
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	logger.Info().
		Str("region", cfg.Region).
		Str("from", cfg.FromEmail).
		Bool("sms_enabled", cfg.SMSEnabled).
		Msg("notifier initialised")

	return &awsNotifier{
		ses:        sesv2.NewFromConfig(awsCfg),
		sns:        sns.NewFromConfig(awsCfg),
		fromEmail:  cfg.FromEmail,
		adminEmail: cfg.AdminEmail,
		smsEnabled: cfg.SMSEnabled,
		logger:     logger,
	}, nil
}

// sendEmail performs a single SES send. Errors are logged, never returned.
func (n *awsNotifier) sendEmail(ctx context.Context, to, subject, body string) {
	_, err := n.ses.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(n.fromEmail),
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(subject)},
				Body: &types.Body{
					Text: &types.Content{Data: aws.String(body)},
				},
			},
		},
	})
	if err != nil {
		n.logger.Error().Err(err).Str("to", to).Str("subject", subject).Msg("failed to send email")
		return
	}

	n.logger.Debug().Str("to", to).Str("subject", subject).Msg("email sent")
}

func (n *awsNotifier) OrderConfirmation(ctx context.Context, userEmail, orderNumber string, totalAmount int64, items []OrderLine, shippingAddress string) {
	var b strings.Builder
	fmt.Fprintf(&b, "Thank you for your order #%s.\n\nItems:\n", orderNumber)
	for _, item := range items {
		fmt.Fprintf(&b, "  %s x%d - %s\n", item.Name, item.Quantity, formatAmount(item.Total))
	}
	fmt.Fprintf(&b, "\nTotal: %s\nShipping to: %s\n", formatAmount(totalAmount), shippingAddress)

	subject := fmt.Sprintf("Order Confirmation - #%s | Reyan Luxe", orderNumber)
	n.sendEmail(ctx, userEmail, subject, b.String())
}

func (n *awsNotifier) OrderStatusChanged(ctx context.Context, userEmail, orderNumber, status, trackingNumber string) {
	message := statusMessage(status, trackingNumber)
	subject := fmt.Sprintf("Order Update - #%s | Reyan Luxe", orderNumber)
	n.sendEmail(ctx, userEmail, subject, message)
}

func (n *awsNotifier) PaymentConfirmed(ctx context.Context, userEmail, orderNumber string, amount int64, paymentMethod string) {
	subject := fmt.Sprintf("Payment Confirmed - Order #%s | Reyan Luxe", orderNumber)
	body := fmt.Sprintf("We received your payment of %s for order #%s via %s.\n", formatAmount(amount), orderNumber, paymentMethod)
	n.sendEmail(ctx, userEmail, subject, body)
}

func (n *awsNotifier) AdminNewOrder(ctx context.Context, orderNumber string, totalAmount int64, customerEmail, customerName string) {
	if n.adminEmail == "" {
		return
	}

	subject := fmt.Sprintf("New Order - #%s | Reyan Luxe", orderNumber)
	body := fmt.Sprintf(
		"New order received.\n\nOrder Number: %s\nCustomer: %s\nCustomer Email: %s\nTotal Amount: %s\n",
		orderNumber, customerName, customerEmail, formatAmount(totalAmount),
	)
	n.sendEmail(ctx, n.adminEmail, subject, body)
}

func (n *awsNotifier) SendOTP(ctx context.Context, email, phone, code string) {
	n.sendEmail(ctx, email, "Your OTP for Reyan Luxe", fmt.Sprintf("Your OTP is %s. It expires in 5 minutes.", code))

	if n.smsEnabled && phone != "" {
		_, err := n.sns.Publish(ctx, &sns.PublishInput{
			PhoneNumber: aws.String(phone),
			Message:     aws.String(fmt.Sprintf("Your Reyan Luxe OTP is %s", code)),
		})
		if err != nil {
			n.logger.Error().Err(err).Str("phone", phone).Msg("failed to send OTP SMS")
			return
		}
		n.logger.Debug().Str("phone", phone).Msg("OTP SMS sent")
	}
}

// statusMessage maps a fulfilment status to customer-facing copy.
func statusMessage(status, trackingNumber string) string {
	switch status {
	case "confirmed":
		return "Your order has been confirmed and is being prepared for shipment."
	case "shipped":
		if trackingNumber != "" {
			return fmt.Sprintf("Your order has been shipped. Tracking number: %s", trackingNumber)
		}
		return "Your order has been shipped."
	case "delivered":
		return "Your order has been delivered successfully."
	case "cancelled":
		return "Your order has been cancelled."
	default:
		return fmt.Sprintf("Your order status has been updated to: %s", status)
	}
}

// formatAmount renders minor units as rupees.
func formatAmount(minor int64) string {
	return fmt.Sprintf("₹%d.%02d", minor/100, minor%100)
}
