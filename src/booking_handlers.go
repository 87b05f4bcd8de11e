package main

import (
	"errors"
	"log"
	"net/http"
	"time"

	"vrm/src/common"
	"vrm/src/db"
	"vrm/src/middlewares"
	"vrm/src/models"
	"vrm/src/types"

	"github.com/gin-gonic/gin"
)

func respondError(ctx *gin.Context, err error) {
	switch {
	case common.IsValidationError(err):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, common.ErrNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, common.ErrForbidden):
		ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, common.ErrConflict):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, common.ErrInsufficientFunds):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case common.IsExternalError(err):
		ctx.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	}
}

func bookingResponse(booking *models.Booking, now time.Time) types.APIResponseBooking {
	return types.APIResponseBooking{
		ID:           booking.ID,
		VehicleID:    booking.VehicleID,
		Status:       common.DisplayStatusOf(booking, now),
		StartDate:    booking.StartDate,
		EndDate:      booking.EndDate,
		BasePrice:    booking.BasePrice,
		BookingFee:   booking.BookingFee,
		ServiceFee:   booking.ServiceFee,
		TotalAmount:  booking.TotalAmount,
		Payout:       booking.Payout,
		RefundAmount: booking.RefundAmount,
		Currency:     booking.Currency,
		Refundable:   booking.Refundable,
		Released:     booking.Released,
		CustomerID:   booking.CustomerID,
		BusinessID:   booking.BusinessID,
		AffiliateID:  booking.AffiliateID,
	}
}

func bookingHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/bookings", func(ctx *gin.Context) {
			callerId := ctx.GetUint("id")
			role := types.CallerRole(ctx.GetString("role"))
			gdb := db.GetDb()
			query := gdb.Model(&models.Booking{})
			switch role {
			case types.ROLE_CUSTOMER:
				query = query.Where("customer_id = ?", callerId)
			case types.ROLE_BUSINESS:
				query = query.Where("business_id = ?", callerId)
			case types.ROLE_AFFILIATE:
				query = query.Where("affiliate_id = ?", callerId)
			case types.ROLE_ADMIN:
			default:
				ctx.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
				return
			}
			var bookings []models.Booking
			if err := query.Order("id DESC").Limit(100).Find(&bookings).Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			now := time.Now().UTC()
			data := make([]types.APIResponseBooking, 0, len(bookings))
			for i := range bookings {
				data = append(data, bookingResponse(&bookings[i], now))
			}
			ctx.JSON(http.StatusOK, gin.H{"data": data, "count": len(data)})
		}).
		GET("/bookings/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			callerId := ctx.GetUint("id")
			role := types.CallerRole(ctx.GetString("role"))
			gdb := db.GetDb()
			var booking models.Booking
			if err := gdb.
				Model(&models.Booking{}).
				Where("id = ?", params.ID).
				Preload("Vehicle").
				First(&booking).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			owned := (role == types.ROLE_CUSTOMER && booking.CustomerID == callerId) ||
				(role == types.ROLE_BUSINESS && booking.BusinessID == callerId) ||
				role == types.ROLE_ADMIN
			if !owned {
				ctx.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": bookingResponse(&booking, time.Now().UTC())})
		}).
		POST("/bookings", middlewares.RequireRole(types.ROLE_CUSTOMER), func(ctx *gin.Context) {
			var body types.CreateBookingRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			customerId := ctx.GetUint("id")
			booking, err := common.CreateBooking(ctx.Request.Context(), customerId, &body)
			if err != nil {
				log.Printf("Error creating booking: %s\n", err.Error())
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": bookingResponse(booking, time.Now().UTC())})
		}).
		PUT("/bookings/:id/decision", middlewares.RequireRole(types.ROLE_BUSINESS), func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var body types.BookingDecisionRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			businessId := ctx.GetUint("id")
			booking, err := common.DecideBooking(ctx.Request.Context(), businessId, params.ID, body.Decision)
			if err != nil {
				log.Printf("Error deciding booking %d: %s\n", params.ID, err.Error())
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": bookingResponse(booking, time.Now().UTC())})
		}).
		DELETE("/bookings/:id", middlewares.RequireRole(types.ROLE_CUSTOMER), func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			customerId := ctx.GetUint("id")
			if err := common.DeleteBooking(ctx.Request.Context(), customerId, params.ID); err != nil {
				respondError(ctx, err)
				return
			}
			ctx.Status(http.StatusNoContent)
		})
	return g
}
