package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ErenSahind/qr-menu/internal/auth"
	"github.com/ErenSahind/qr-menu/internal/validation"
)

// RegisterAuthRoutes registers the thin register/login endpoints backing the
// owner-facing forms.
func RegisterAuthRoutes(r *gin.Engine, cfg HandlerConfig) {
	v := validation.New()
	profiles := auth.NewStore(cfg.DynamoDBClient, cfg.ProfilesTable)

	r.POST("/api/register", func(c *gin.Context) {
		var req validation.RegisterRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		p, err := profiles.Register(c.Request.Context(), req.Email, req.Password, req.FullName)
		if err != nil {
			if errors.Is(err, auth.ErrEmailInUse) {
				c.JSON(http.StatusConflict, gin.H{"error": "email_in_use"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "registration_failed", "detail": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"user": gin.H{
				"id":        p.ID,
				"email":     p.Email,
				"full_name": p.FullName,
				"role":      p.Role,
			},
		})
	})

	r.POST("/api/login", func(c *gin.Context) {
		var req validation.LoginRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		p, err := profiles.Authenticate(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidCredentials) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "login_failed", "detail": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "user_id": p.ID})
	})
}
