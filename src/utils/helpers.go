package utils

import (
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"vrm/src/config"
	"vrm/src/types"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// Round2 rounds to currency minor-unit precision. Applied only to final
// charge/refund figures; intermediate arithmetic keeps full precision.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func GenerateJWT(email string, accountId uint, role types.CallerRole) (string, error) {
	jwtKey := []byte(os.Getenv("JWT_SECRET"))
	claims := types.Claims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprint(accountId),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtKey)
}

func MakeSlug(parts ...string) string {
	return slug.Make(strings.Join(parts, " "))
}

func GenerateAffiliateCode(name string) string {
	suffix := strings.Split(uuid.New().String(), "-")[0]
	return fmt.Sprintf("%s-%s", slug.Make(name), suffix)
}

func ParseDate(value string) (*time.Time, error) {
	d, err := time.Parse(config.DATE_PARSE_FORMAT, value)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
