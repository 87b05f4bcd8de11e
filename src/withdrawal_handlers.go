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

func withdrawalHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/withdrawals", middlewares.RequireRole(types.ROLE_BUSINESS), func(ctx *gin.Context) {
			var body types.CreateWithdrawalRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			businessId := ctx.GetUint("id")
			withdrawal, err := common.Withdraw(ctx.Request.Context(), businessId, &body)
			if err != nil {
				log.Printf("Error processing withdrawal for business %d: %s\n", businessId, err.Error())
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": withdrawal})
		}).
		GET("/withdrawals", middlewares.RequireRole(types.ROLE_BUSINESS), func(ctx *gin.Context) {
			businessId := ctx.GetUint("id")
			gdb := db.GetDb()
			var withdrawals []models.Withdrawal
			if err := gdb.
				Model(&models.Withdrawal{}).
				Where("business_id = ?", businessId).
				Order("id DESC").
				Limit(100).
				Find(&withdrawals).
				Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": withdrawals, "count": len(withdrawals)})
		}).
		POST("/payouts/release", middlewares.RequireRole(types.ROLE_BUSINESS), func(ctx *gin.Context) {
			businessId := ctx.GetUint("id")
			result, err := common.ReleaseDuePayouts(ctx.Request.Context(), businessId)
			if err != nil {
				log.Printf("Error releasing payouts for business %d: %s\n", businessId, err.Error())
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": result})
		}).
		GET("/balance", middlewares.RequireRole(types.ROLE_BUSINESS), func(ctx *gin.Context) {
			businessId := ctx.GetUint("id")
			gdb := db.GetDb()
			var business models.Business
			if err := gdb.Model(&models.Business{}).Where("id = ?", businessId).First(&business).Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{
				"pending_balance":   business.PendingBalance,
				"available_balance": business.AvailableBalance,
			})
		})
	return g
}
