package main

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"os"

	"vrm/src/db"
	"vrm/src/models"
	"vrm/src/types"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
	"github.com/tidwall/gjson"
	"gorm.io/gorm"
)

func stripeWebhookRoute(g *gin.Engine) *gin.RouterGroup {
	apiv1 := apiv1Group(g)
	apiv1.POST("/webhook/stripe", func(ctx *gin.Context) {
		payload, err := io.ReadAll(ctx.Request.Body)
		if err != nil {
			log.Printf("Error reading request body: %s\n", err.Error())
			ctx.Status(http.StatusServiceUnavailable)
			return
		}
		whsecret := os.Getenv("STRIPE_WEBHOOK_SECRET")
		event, err := webhook.ConstructEvent(payload, ctx.GetHeader("Stripe-Signature"), whsecret)
		if err != nil {
			log.Printf("Error verifying webhook signature: %s\n", err.Error())
			ctx.Status(http.StatusBadRequest)
			return
		}
		log.Printf("[StripeEvent] %s\n", event.Type)
		switch event.Type {
		case "payment_intent.succeeded", "payment_intent.payment_failed":
			var pi stripe.PaymentIntent
			if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
				log.Printf("[Stripe] Error parsing PaymentIntent: %s\n", err.Error())
				break
			}
			status := types.TRANSACTION_COMPLETED
			if event.Type == "payment_intent.payment_failed" {
				status = types.TRANSACTION_FAILED
			}
			gdb := db.GetDb()
			if err := gdb.Transaction(func(tx *gorm.DB) error {
				return tx.
					Model(&models.Transaction{}).
					Where("reference_id = ?", pi.ID).
					Update("status", status).
					Error
			}); err != nil {
				log.Printf("Error updating transaction for PaymentIntent %s: %s\n", pi.ID, err.Error())
			}
		case "identity.verification_session.verified", "identity.verification_session.requires_input":
			// The identity verifier reports back here; the core only stores
			// the flag and the failure reason.
			email := gjson.GetBytes(event.Data.Raw, "metadata.email").String()
			if email == "" {
				log.Println("[Stripe] Verification session carries no customer email")
				break
			}
			verified := event.Type == "identity.verification_session.verified"
			updates := map[string]any{"identity_verified": verified}
			if !verified {
				reason := gjson.GetBytes(event.Data.Raw, "last_error.reason").String()
				updates["verification_error"] = reason
			} else {
				updates["verification_error"] = nil
			}
			gdb := db.GetDb()
			if err := gdb.Transaction(func(tx *gorm.DB) error {
				return tx.
					Model(&models.Customer{}).
					Where("email = ?", email).
					Updates(updates).
					Error
			}); err != nil {
				log.Printf("Error updating verification state for %s: %s\n", email, err.Error())
			}
		default:
			log.Printf("[StripeEvent] Unhandled event type: %s\n", event.Type)
		}
		ctx.Status(http.StatusOK)
	})
	return apiv1
}
