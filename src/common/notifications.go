package common

import (
	"log"

	"vrm/src/db"
	"vrm/src/lib/mailer"
	"vrm/src/models"
)

// Notify delivers a templated email to a recipient. Best-effort: failures are
// logged and never fail the business operation that triggered them.
func Notify(recipient string, kind mailer.TemplateKind, args ...any) {
	go func() {
		if recipient == "" {
			return
		}
		if err := mailer.NewMailerMessage(kind, recipient, args...); err != nil {
			log.Printf("Error sending %s notification to %s: %s\n", kind, recipient, err.Error())
		}
	}()
}

// AppendSystemMessage writes a system line into the booking's conversation
// thread. Best-effort, same as Notify.
func AppendSystemMessage(bookingId uint, text string) {
	go func() {
		gdb := db.GetDb()
		msg := models.Message{
			BookingID: bookingId,
			System:    true,
			Body:      text,
		}
		if err := gdb.Create(&msg).Error; err != nil {
			log.Printf("Error appending system message to booking %d: %s\n", bookingId, err.Error())
		}
	}()
}
