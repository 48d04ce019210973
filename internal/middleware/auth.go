package middleware

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"newsboard/internal/config"
	"newsboard/internal/models"
	"newsboard/internal/store"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	// CurrentUserKey is the gin context key holding *models.CurrentUser
	CurrentUserKey = "current_user"
	// SessionUserKey is the session value holding the logged in user's id
	SessionUserKey = "user_id"
)

// AuthClaims represents the JWT claims structure
type AuthClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

var (
	jwtSecret []byte
	tokenTTL  = 24 * time.Hour
)

// SetJWTSecret sets the JWT secret key and token lifetime
func SetJWTSecret(cfg *config.Config) {
	jwtSecret = []byte(cfg.JWTSecret)
	if cfg.TokenTTL > 0 {
		tokenTTL = cfg.TokenTTL
	}
}

// GenerateJWT creates a new JWT token for a user
func GenerateJWT(userID uint, username string) (string, error) {
	now := time.Now()
	claims := AuthClaims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

// ParseJWT validates a token string and returns its claims
func ParseJWT(tokenString string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// LoadUser resolves the caller from a bearer token or the session cookie and
// stores it under CurrentUserKey. Anonymous requests pass through unchanged.
func LoadUser(users *store.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := bearerUserID(c)
		if !ok {
			userID, ok = sessionUserID(c)
		}
		if ok {
			user, err := users.FindByID(c.Request.Context(), userID)
			switch {
			case err == nil:
				c.Set(CurrentUserKey, &models.CurrentUser{ID: user.ID, Username: user.Username})
			case !errors.Is(err, store.ErrNotFound):
				log.Printf("load user %d: %v", userID, err)
			}
		}
		c.Next()
	}
}

// AuthRequired rejects requests without a resolved user
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Unauthorized",
			})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the user resolved by LoadUser, or nil
func CurrentUser(c *gin.Context) *models.CurrentUser {
	v, ok := c.Get(CurrentUserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*models.CurrentUser)
	return user
}

// CurrentUserID returns a pointer to the caller's id, or nil when anonymous
func CurrentUserID(c *gin.Context) *uint {
	if user := CurrentUser(c); user != nil {
		id := user.ID
		return &id
	}
	return nil
}

// StartSession records the user in the session cookie
func StartSession(c *gin.Context, userID uint) error {
	session := sessions.Default(c)
	session.Set(SessionUserKey, userID)
	return session.Save()
}

// EndSession clears the session cookie
func EndSession(c *gin.Context) error {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	return session.Save()
}

func bearerUserID(c *gin.Context) (uint, bool) {
	header := c.GetHeader("Authorization")
	tokenString, found := strings.CutPrefix(header, "Bearer ")
	if !found || tokenString == "" {
		return 0, false
	}
	claims, err := ParseJWT(tokenString)
	if err != nil {
		return 0, false
	}
	return claims.UserID, true
}

func sessionUserID(c *gin.Context) (uint, bool) {
	id, ok := sessions.Default(c).Get(SessionUserKey).(uint)
	return id, ok && id != 0
}
