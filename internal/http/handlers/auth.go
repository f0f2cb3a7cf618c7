package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Th3UrBanGuy/versity-bms/internal/domain/models"
	"github.com/Th3UrBanGuy/versity-bms/internal/http/middleware"
	"github.com/Th3UrBanGuy/versity-bms/internal/services"
	"github.com/Th3UrBanGuy/versity-bms/internal/utils"
)

type loginRequest struct {
	Identifier string      `json:"identifier" binding:"required"`
	Password   string      `json:"password" binding:"required"`
	Role       models.Role `json:"role" binding:"required"`
}

// POST /api/auth/login
func (a *API) Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	user, token, err := a.Auth.Login(req.Identifier, req.Password, req.Role)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	utils.LogEvent(middleware.GetRequestID(c), "auth", "login", "user_id="+user.ID)
	c.JSON(http.StatusOK, gin.H{"user": user, "token": token})
}

// POST /api/auth/register
func (a *API) Register(c *gin.Context) {
	var req struct {
		Name       string      `json:"name" binding:"required"`
		Identifier string      `json:"identifier" binding:"required"`
		Password   string      `json:"password" binding:"required"`
		Role       models.Role `json:"role"`
	}
	if !BindJSONOrError(c, &req) {
		return
	}
	if req.Role == "" {
		req.Role = models.RoleStudent
	}

	user, token, err := a.Auth.Signup(services.SignupInput{
		Name:       req.Name,
		Identifier: req.Identifier,
		Password:   req.Password,
		Role:       req.Role,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	utils.LogEvent(middleware.GetRequestID(c), "auth", "register", "user_id="+user.ID)
	c.JSON(http.StatusCreated, gin.H{"user": user, "token": token})
}

// GET /api/auth/session
func (a *API) Session(c *gin.Context) {
	user, ok := a.Auth.Restore(middleware.GetUserID(c))
	if !ok {
		// valid token but the account is gone: treat as logged out
		respondError(c, http.StatusUnauthorized, "authentication_failure", "session no longer valid")
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// POST /api/auth/logout
//
// Sessions live in the signed token the client persists, so logout is purely
// the client discarding it; the endpoint exists so the action is auditable.
func (a *API) Logout(c *gin.Context) {
	utils.LogEvent(middleware.GetRequestID(c), "auth", "logout", "user_id="+middleware.GetUserID(c))
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}
