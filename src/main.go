package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"vrm/src/common"
	"vrm/src/config"
	"vrm/src/db"
	"vrm/src/lib"
	"vrm/src/middlewares"
	"vrm/src/models"
	"vrm/src/types"
	"vrm/src/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"gorm.io/gorm"
)

const apiPrefix = "/api/v1"

var rentalDateValidatorFunc validator.Func = func(fl validator.FieldLevel) bool {
	date, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	datetime, err := time.Parse(config.DATE_PARSE_FORMAT, date)
	if err != nil {
		return false
	}
	today := time.Now().UTC().Truncate(24 * time.Hour)
	return !datetime.Before(today)
}

var gtdatefield validator.Func = func(fl validator.FieldLevel) bool {
	date, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	datetime, err := time.Parse(config.DATE_PARSE_FORMAT, date)
	if err != nil {
		return false
	}
	field := fl.Parent().FieldByName(fl.Param())
	fieldValue, ok := field.Interface().(string)
	if !ok {
		return false
	}
	fielddatetime, err := time.Parse(config.DATE_PARSE_FORMAT, fieldValue)
	if err != nil {
		return false
	}
	return datetime.After(fielddatetime)
}

func registerValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("rentaldate", rentalDateValidatorFunc)
		v.RegisterValidation("gtdatefield", gtdatefield)
	}
}

func setupRouter() *gin.Engine {
	router := gin.Default()
	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, "ok")
	})
	return router
}

func maintenanceModeMiddleware(g *gin.Engine) *gin.Engine {
	g.Use(func(ctx *gin.Context) {
		mm := os.Getenv("MAINTENANCE_MODE")
		atoi, err := strconv.ParseBool(mm)
		if err == nil && atoi {
			err := errors.New("server is under maintenance")
			log.Println(err.Error())
			ctx.AbortWithStatusJSON(http.StatusServiceUnavailable, err.Error())
			return
		}
	})
	return g
}

func apiv1Group(g *gin.Engine) *gin.RouterGroup {
	apiv1 := g.Group(apiPrefix)
	return apiv1
}

func guestAuthRoutes(g *gin.Engine) *gin.RouterGroup {
	apiv1 := apiv1Group(g)
	auth := apiv1.Group("/auth")
	auth.
		POST("/register", func(ctx *gin.Context) {
			var body types.RegisterRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			gdb := db.GetDb()
			var accountId uint
			err := gdb.Transaction(func(tx *gorm.DB) error {
				switch body.Role {
				case types.ROLE_CUSTOMER, types.ROLE_ADMIN:
					customer := models.Customer{Name: body.Name, Email: body.Email}
					if err := tx.Create(&customer).Error; err != nil {
						return err
					}
					accountId = customer.ID
				case types.ROLE_BUSINESS:
					business := models.Business{
						Name:         body.Name,
						ContactEmail: body.Email,
						Slug:         utils.MakeSlug(body.Name),
					}
					if err := tx.Create(&business).Error; err != nil {
						return err
					}
					accountId = business.ID
				case types.ROLE_AFFILIATE:
					affiliate := newAffiliate(body.Name, body.Email)
					if err := tx.Create(&affiliate).Error; err != nil {
						return err
					}
					accountId = affiliate.ID
				}
				return nil
			})
			if err != nil {
				log.Printf("Error registering account: %s\n", err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			token, err := utils.GenerateJWT(body.Email, accountId, body.Role)
			if err != nil {
				log.Printf("Error generating JWT token: %s\n", err.Error())
				ctx.Status(http.StatusInternalServerError)
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"id": accountId, "token": token})
		}).
		POST("/login", func(ctx *gin.Context) {
			var body types.LoginRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			gdb := db.GetDb()
			var accountId uint
			switch body.Role {
			case types.ROLE_CUSTOMER, types.ROLE_ADMIN:
				var customer models.Customer
				if err := gdb.Model(&models.Customer{}).Where("email = ?", body.Email).First(&customer).Error; err != nil {
					ctx.JSON(http.StatusNotFound, gin.H{"error": "account not found"})
					return
				}
				accountId = customer.ID
			case types.ROLE_BUSINESS:
				var business models.Business
				if err := gdb.Model(&models.Business{}).Where("contact_email = ?", body.Email).First(&business).Error; err != nil {
					ctx.JSON(http.StatusNotFound, gin.H{"error": "account not found"})
					return
				}
				accountId = business.ID
			case types.ROLE_AFFILIATE:
				var affiliate models.Affiliate
				if err := gdb.Model(&models.Affiliate{}).Where("email = ?", body.Email).First(&affiliate).Error; err != nil {
					ctx.JSON(http.StatusNotFound, gin.H{"error": "account not found"})
					return
				}
				accountId = affiliate.ID
			}
			token, err := utils.GenerateJWT(body.Email, accountId, body.Role)
			if err != nil {
				log.Printf("Error generating JWT token: %s\n", err.Error())
				ctx.Status(http.StatusInternalServerError)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"id": accountId, "token": token})
		})
	return apiv1
}

func protectedRoutes(g *gin.Engine) *gin.RouterGroup {
	apiv1 := apiv1Group(g)
	apiv1.Use(middlewares.AuthMiddleware)
	bookingHandlers(apiv1)
	refundHandlers(apiv1)
	withdrawalHandlers(apiv1)
	affiliateHandlers(apiv1)
	vehicleHandlers(apiv1)
	return apiv1
}

func startReleaseJob() {
	interval := time.Hour
	if raw := os.Getenv("RELEASE_INTERVAL_MINUTES"); raw != "" {
		if mins, err := strconv.Atoi(raw); err == nil && mins > 0 {
			interval = time.Duration(mins) * time.Minute
		}
	}
	jobId, err := lib.CreateCronJob(func() {
		common.ReleaseAllDuePayouts(context.Background())
	}, interval)
	if err != nil {
		log.Printf("Error scheduling payout release job: %s\n", err.Error())
		return
	}
	lib.StartScheduler()
	log.Printf("Payout release job scheduled: %s\n", *jobId)
}

func main() {
	gdb := db.GetDb()
	if err := gdb.AutoMigrate(
		&models.Customer{},
		&models.Business{},
		&models.Affiliate{},
		&models.Vehicle{},
		&models.Booking{},
		&models.RefundRequest{},
		&models.Withdrawal{},
		&models.Transaction{},
		&models.Message{},
		&models.PlatformRevenue{},
	); err != nil {
		log.Fatalf("error migration: %s", err.Error())
	}

	registerValidators()

	router := setupRouter()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{os.Getenv("WEB_ORIGIN")},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	router = maintenanceModeMiddleware(router)

	guestAuthRoutes(router)
	stripeWebhookRoute(router)
	protectedRoutes(router)

	startReleaseJob()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("starting server on port %s\n", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("server error: %s", err.Error())
	}
}
