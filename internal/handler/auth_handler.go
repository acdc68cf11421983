package handler

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"juegos/backend/pkg/jwt"
)

// LoginInput defines the structure for operator login.
type LoginInput struct {
	Username string `json:"username" binding:"required" example:"admin"`
	Password string `json:"password" binding:"required" example:"password123"`
}

// AuthHandler issues tokens for the single operator account from config.
type AuthHandler struct {
	username     string
	passwordHash []byte
	secret       string
	ttl          time.Duration
	log          *zap.Logger
}

func NewAuthHandler(username, passwordHash, secret string, ttl time.Duration, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		username:     username,
		passwordHash: []byte(passwordHash),
		secret:       secret,
		ttl:          ttl,
		log:          log,
	}
}

// Login godoc
// @Summary      Log in
// @Description  Checks the operator credentials and returns a bearer token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body LoginInput true "Credentials"
// @Success      200  {object}  Response
// @Failure      400  {object}  Response
// @Failure      401  {object}  Response
// @Failure      500  {object}  Response
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err.Error())
		return
	}

	// An unset account disables login entirely.
	if h.username == "" || len(h.passwordHash) == 0 ||
		subtle.ConstantTimeCompare([]byte(input.Username), []byte(h.username)) != 1 ||
		bcrypt.CompareHashAndPassword(h.passwordHash, []byte(input.Password)) != nil {
		c.JSON(http.StatusUnauthorized, Response{Status: false, Errors: []string{"invalid credentials"}})
		return
	}

	token, err := jwt.GenerateToken(h.username, h.secret, h.ttl)
	if err != nil {
		fail(c, h.log, err)
		return
	}
	ok(c, Response{Token: token})
}
