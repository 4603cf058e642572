package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"go-careers-backend/internal/delivery/http/response"
	"go-careers-backend/internal/domain"
)

type AuthHandler struct {
	authUC       domain.AuthUsecase
	secureCookie bool
}

func NewAuthHandler(public *gin.RouterGroup, protected *gin.RouterGroup, authUC domain.AuthUsecase, loginLimit gin.HandlerFunc, secureCookie bool) {
	handler := &AuthHandler{
		authUC:       authUC,
		secureCookie: secureCookie,
	}

	// Public Routes
	publicAuth := public.Group("/auth")
	{
		publicAuth.POST("/login", loginLimit, handler.Login)
		publicAuth.POST("/logout", handler.Logout)
	}

	// Protected Routes
	protectedAuth := protected.Group("/auth")
	{
		protectedAuth.GET("/me", handler.Me)
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login godoc
// @Summary      Admin login
// @Description  Returns a session token and also sets it as the auth_token cookie
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        credentials  body      LoginRequest  true  "Email and password"
// @Success      200          {object}  response.Response{data=domain.Session}
// @Failure      400          {object}  response.Response
// @Failure      401          {object}  response.Response
// @Failure      429          {object}  response.Response
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	session, err := h.authUC.Authenticate(c.Request.Context(), domain.Credentials{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		c.Error(err)
		return
	}

	maxAge := int(time.Until(session.ExpiresAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("auth_token", session.Token, maxAge, "/", "", h.secureCookie, true)

	response.Success(c, http.StatusOK, "Login successful", session)
}

// Logout godoc
// @Summary      Clear the session cookie
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("auth_token", "", -1, "/", "", h.secureCookie, true)
	response.Success(c, http.StatusOK, "Logged out", nil)
}

// Me godoc
// @Summary      Current admin user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.AdminUser}
// @Failure      401  {object}  response.Response
// @Router       /auth/me [get]
// @Security     BearerAuth
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.authUC.GetCurrentUser(c.Request.Context(), c.GetString(string(domain.KeyUserID)))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "User profile", user)
}
