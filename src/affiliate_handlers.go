package main

import (
	"net/http"

	"vrm/src/db"
	"vrm/src/middlewares"
	"vrm/src/models"
	"vrm/src/types"
	"vrm/src/utils"

	"github.com/gin-gonic/gin"
)

func affiliateHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/affiliates/me", middlewares.RequireRole(types.ROLE_AFFILIATE), func(ctx *gin.Context) {
			affiliateId := ctx.GetUint("id")
			gdb := db.GetDb()
			var affiliate models.Affiliate
			if err := gdb.Model(&models.Affiliate{}).Where("id = ?", affiliateId).First(&affiliate).Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": affiliate})
		}).
		GET("/affiliates/code/:code", func(ctx *gin.Context) {
			var params struct {
				Code string `uri:"code" binding:"required"`
			}
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			gdb := db.GetDb()
			var count int64
			if err := gdb.Model(&models.Affiliate{}).Where("code = ?", params.Code).Count(&count).Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"valid": count > 0})
		})
	return g
}

func newAffiliate(name, email string) models.Affiliate {
	return models.Affiliate{
		Name:  name,
		Email: email,
		Code:  utils.GenerateAffiliateCode(name),
	}
}
