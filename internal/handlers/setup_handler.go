package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ErenSahind/qr-menu/internal/catalog"
	"github.com/ErenSahind/qr-menu/internal/validation"
)

// RegisterSetupRoutes registers the onboarding-wizard endpoint: first branch
// plus its tables in one shot. The owner id comes from the X-User-Id header
// set by the session layer in front of this API.
func RegisterSetupRoutes(r *gin.Engine, cfg HandlerConfig) {
	v := validation.New()
	catalogStore := catalog.NewStore(cfg.DynamoDBClient, cfg.CatalogTables)

	r.POST("/api/setup", func(c *gin.Context) {
		ownerID := c.GetHeader("X-User-Id")
		if ownerID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing_user"})
			return
		}

		var req validation.SetupRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		branch, tables, err := catalogStore.CreateBranchWithTables(c.Request.Context(),
			ownerID, req.BranchName, req.Slug, req.TableCount, req.UseTableNumbers)
		if err != nil {
			if errors.Is(err, catalog.ErrSlugTaken) {
				c.JSON(http.StatusConflict, gin.H{"error": "slug_taken"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "setup_failed", "detail": err.Error()})
			return
		}

		outTables := make([]gin.H, 0, len(tables))
		for _, t := range tables {
			outTables = append(outTables, gin.H{
				"id":      t.ID,
				"name":    t.Name,
				"qr_code": t.QRCode,
				// the path baked into the printed sticker, before locale routing
				"qr_path": fmt.Sprintf("/qr/%s/%s", branch.Slug, t.QRCode),
			})
		}

		c.JSON(http.StatusCreated, gin.H{
			"branch": gin.H{
				"id":   branch.ID,
				"name": branch.Name,
				"slug": branch.Slug,
			},
			"tables": outTables,
		})
	})
}
