package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"vrm/src/db"
	"vrm/src/types"
	"vrm/src/utils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/tidwall/gjson"
	"gorm.io/gorm"
)

type TestSuite struct {
	suite.Suite
	DB            *gorm.DB
	Mock          sqlmock.Sqlmock
	CustomerToken string
}

func (s *TestSuite) SetupSuite() {
	registerValidators()

	d, mock := db.NewMockDB()
	db.NewDB(d)
	s.DB = d
	s.Mock = mock

	token, err := utils.GenerateJWT("renter@example.com", 1, types.ROLE_CUSTOMER)
	if err != nil {
		log.Fatalf("Error generating JWT token: %s\n", err.Error())
	}
	s.CustomerToken = token
}

func (s *TestSuite) TestPingRoute() {
	router := setupRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/", nil)
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), 200, w.Code)
}

func (s *TestSuite) TestMaintenanceMode() {
	os.Setenv("MAINTENANCE_MODE", "true")
	defer os.Unsetenv("MAINTENANCE_MODE")

	router := setupRouter()
	router = maintenanceModeMiddleware(router)
	apiv1Group(router)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), 503, w.Code)
}

func (s *TestSuite) TestProtectedRoutesRequireAuth() {
	router := setupRouter()
	protectedRoutes(router)

	s.Run("Should reject a request without a token", func() {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/v1/bookings", nil)
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 401, w.Code)
	})

	s.Run("Should reject a malformed token", func() {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/v1/bookings", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 401, w.Code)
	})
}

func (s *TestSuite) TestAuthRoutes() {
	router := setupRouter()
	guestAuthRoutes(router)

	s.Run("Should return a 400 on an incomplete registration", func() {
		w := httptest.NewRecorder()
		jbody := map[string]any{
			"email": "someone@example.com",
		}
		sbody, _ := json.Marshal(&jbody)
		req, _ := http.NewRequest("POST", "/api/v1/auth/register", strings.NewReader(string(sbody)))
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 400, w.Code)
	})

	s.Run("Should return a 404 for an unknown login", func() {
		s.Mock.ExpectQuery(`SELECT .+ FROM "customers"`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "email"}))

		w := httptest.NewRecorder()
		jbody := map[string]any{
			"email": "nobody@example.com",
			"role":  "customer",
		}
		sbody, _ := json.Marshal(&jbody)
		req, _ := http.NewRequest("POST", "/api/v1/auth/login", strings.NewReader(string(sbody)))
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 404, w.Code)
		assert.Nil(s.T(), s.Mock.ExpectationsWereMet())
	})
}

func (s *TestSuite) TestBookings() {
	router := setupRouter()
	protectedRoutes(router)

	token := s.CustomerToken
	authQuery := func() {
		s.Mock.ExpectQuery(`SELECT .+ FROM "customers"`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "email", "identity_verified"}).
				AddRow(1, "renter@example.com", true))
	}

	s.Run("Should return the caller's bookings with 200 status", func() {
		authQuery()
		s.Mock.ExpectQuery(`SELECT .+ FROM "bookings"`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "customer_id", "status"}))

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/v1/bookings", nil)
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 200, w.Code)
		rbytes, err := io.ReadAll(w.Body)
		assert.Nil(s.T(), err)
		assert.Equal(s.T(), int64(0), gjson.Get(string(rbytes), "count").Int())
		assert.Nil(s.T(), s.Mock.ExpectationsWereMet())
	})

	s.Run("Should return a 400 error response on an incomplete booking", func() {
		authQuery()

		w := httptest.NewRecorder()
		reqBody := types.CreateBookingRequestBody{
			VehicleID: 1,
		}
		rbytes, err := json.Marshal(&reqBody)
		assert.Nil(s.T(), err)
		req, _ := http.NewRequest("POST", "/api/v1/bookings", strings.NewReader(string(rbytes)))
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 400, w.Code)

		rbytes, err = io.ReadAll(w.Body)
		assert.Nil(s.T(), err)
		errMsg := gjson.Get(string(rbytes), "error").String()
		assert.NotNil(s.T(), errMsg)
		assert.Nil(s.T(), s.Mock.ExpectationsWereMet())
	})

	s.Run("Should deny a booking decision from a customer account", func() {
		authQuery()

		w := httptest.NewRecorder()
		jbody := map[string]any{"decision": "approve"}
		sbody, _ := json.Marshal(&jbody)
		req, _ := http.NewRequest("PUT", "/api/v1/bookings/1/decision", strings.NewReader(string(sbody)))
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
		router.ServeHTTP(w, req)

		// The role guard rejects before any booking row is touched.
		assert.Equal(s.T(), 403, w.Code)
		assert.Nil(s.T(), s.Mock.ExpectationsWereMet())
	})

	s.Run("Should return a 400 when the rental window is inverted", func() {
		authQuery()

		w := httptest.NewRecorder()
		reqBody := types.CreateBookingRequestBody{
			VehicleID:    1,
			StartDate:    "2030-06-10",
			EndDate:      "2030-06-05",
			LicenseImage: "licenses/renter.png",
		}
		rbytes, _ := json.Marshal(&reqBody)
		req, _ := http.NewRequest("POST", "/api/v1/bookings", strings.NewReader(string(rbytes)))
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 400, w.Code)
		assert.Nil(s.T(), s.Mock.ExpectationsWereMet())
	})
}

func TestRunner(t *testing.T) {
	suite.Run(t, new(TestSuite))
}
