package main

import (
	"log"
	"net/http"

	"vrm/src/common"
	"vrm/src/db"
	"vrm/src/middlewares"
	"vrm/src/models"
	"vrm/src/types"

	"github.com/gin-gonic/gin"
)

func refundHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/bookings/:id/cancel", middlewares.RequireRole(types.ROLE_CUSTOMER), func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			customerId := ctx.GetUint("id")
			request, err := common.RequestCancellation(ctx.Request.Context(), customerId, params.ID)
			if err != nil {
				log.Printf("Error requesting cancellation for booking %d: %s\n", params.ID, err.Error())
				respondError(ctx, err)
				return
			}
			if request == nil {
				// Pending booking cancelled outright with a full refund.
				ctx.Status(http.StatusNoContent)
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": request})
		}).
		GET("/refund-requests", middlewares.RequireAnyRole(types.ROLE_BUSINESS, types.ROLE_ADMIN), func(ctx *gin.Context) {
			callerId := ctx.GetUint("id")
			role := types.CallerRole(ctx.GetString("role"))
			gdb := db.GetDb()
			query := gdb.
				Model(&models.RefundRequest{}).
				Where("refund_requests.status = ?", types.REFUND_REQUEST_PENDING).
				Preload("Booking")
			if role == types.ROLE_BUSINESS {
				query = query.
					Joins("JOIN bookings ON bookings.id = refund_requests.booking_id").
					Where("bookings.business_id = ?", callerId)
			}
			var requests []models.RefundRequest
			if err := query.Order("refund_requests.id ASC").Find(&requests).Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": requests, "count": len(requests)})
		}).
		PUT("/refund-requests/:id", middlewares.RequireAnyRole(types.ROLE_BUSINESS, types.ROLE_ADMIN), func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var body types.ResolveRefundRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			callerId := ctx.GetUint("id")
			role := types.CallerRole(ctx.GetString("role"))
			request, err := common.ResolveRefundRequest(ctx.Request.Context(), role, callerId, params.ID, body.Decision)
			if err != nil {
				log.Printf("Error resolving refund request %d: %s\n", params.ID, err.Error())
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": request})
		})
	return g
}
