package main

import (
	"log"
	"net/http"

	"vrm/src/config"
	"vrm/src/db"
	"vrm/src/middlewares"
	"vrm/src/models"
	"vrm/src/types"
	"vrm/src/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func vehicleHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/vehicles", func(ctx *gin.Context) {
			gdb := db.GetDb()
			var vehicles []models.Vehicle
			if err := gdb.
				Model(&models.Vehicle{}).
				Where("status = ?", types.VEHICLE_LISTED).
				Order("id DESC").
				Limit(100).
				Find(&vehicles).
				Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": vehicles, "count": len(vehicles)})
		}).
		POST("/vehicles", middlewares.RequireRole(types.ROLE_BUSINESS), func(ctx *gin.Context) {
			var body types.CreateVehicleRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			businessId := ctx.GetUint("id")
			currency := body.Currency
			if currency == "" {
				currency = config.DEFAULT_CURRENCY
			}
			vehicle := models.Vehicle{
				BusinessID:         businessId,
				Make:               body.Make,
				Model:              body.Model,
				Year:               body.Year,
				DailyRate:          body.DailyRate,
				Currency:           currency,
				CancellationPolicy: body.CancellationPolicy,
				Location:           body.Location,
				Slug:               utils.MakeSlug(body.Make, body.Model),
				Status:             types.VEHICLE_LISTED,
			}
			gdb := db.GetDb()
			if err := gdb.Transaction(func(tx *gorm.DB) error {
				return tx.Create(&vehicle).Error
			}); err != nil {
				log.Printf("Error creating vehicle listing: %s\n", err.Error())
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": vehicle})
		}).
		PUT("/vehicles/:id/unlist", middlewares.RequireRole(types.ROLE_BUSINESS), func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			businessId := ctx.GetUint("id")
			gdb := db.GetDb()
			res := gdb.
				Model(&models.Vehicle{}).
				Where("id = ? AND business_id = ?", params.ID, businessId).
				Update("status", types.VEHICLE_UNLISTED)
			if res.Error != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": res.Error.Error()})
				return
			}
			if res.RowsAffected == 0 {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "vehicle not found"})
				return
			}
			ctx.Status(http.StatusNoContent)
		})
	return g
}
