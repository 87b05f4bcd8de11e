package mailer

import (
	"fmt"
	"os"

	"vrm/src/lib"
)

type TemplateKind string

const (
	TemplateBookingReceived TemplateKind = "booking-received"
	TemplateBookingApproved TemplateKind = "booking-approved"
	TemplateBookingRejected TemplateKind = "booking-rejected"
	TemplateRefundApproved  TemplateKind = "refund-approved"
	TemplateRefundRejected  TemplateKind = "refund-rejected"
	TemplateWithdrawalSent  TemplateKind = "withdrawal-sent"
)

var subjects = map[TemplateKind]string{
	TemplateBookingReceived: "We received your booking request",
	TemplateBookingApproved: "Your booking has been approved",
	TemplateBookingRejected: "Your booking was not approved",
	TemplateRefundApproved:  "Your cancellation has been approved",
	TemplateRefundRejected:  "Your cancellation request was declined",
	TemplateWithdrawalSent:  "Your withdrawal is on its way",
}

var bodies = map[TemplateKind]string{
	TemplateBookingReceived: "Thanks! Your booking #%v is waiting for the rental company to confirm.",
	TemplateBookingApproved: "Good news! Your booking #%v is confirmed.",
	TemplateBookingRejected: "Unfortunately booking #%v was declined. Your payment has been refunded in full.",
	TemplateRefundApproved:  "Your cancellation for booking #%v was approved. A refund of %v is on its way.",
	TemplateRefundRejected:  "Your cancellation request for booking #%v was declined. The booking remains active.",
	TemplateWithdrawalSent:  "Your withdrawal of %v has been sent to your payout destination.",
}

// NewMailerMessage renders a template and hands it to the SMTP client.
// Callers treat delivery as best-effort.
func NewMailerMessage(kind TemplateKind, to string, args ...any) error {
	subject, ok := subjects[kind]
	if !ok {
		return fmt.Errorf("unknown mail template: %s", kind)
	}
	body := fmt.Sprintf(bodies[kind], args...)
	from := os.Getenv("MAIL_FROM")
	if from == "" {
		from = "no-reply@vrm.example"
	}
	return lib.SendMail(&lib.SendMailInput{
		From:     from,
		FromName: "VRM Rentals",
		To:       []string{to},
		Subject:  subject,
		Body:     body,
	})
}
