package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ErenSahind/qr-menu/internal/awsx"
	"github.com/ErenSahind/qr-menu/internal/catalog"
	"github.com/ErenSahind/qr-menu/internal/i18n"
)

// menuProduct is one product as rendered on the scanned menu, with the
// localized strings already picked for the active locale.
type menuProduct struct {
	ID          string   `json:"id"`
	CategoryID  string   `json:"category_id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Price       float64  `json:"price"`
	Allergens   []string `json:"allergens,omitempty"`
	Badges      []string `json:"badges,omitempty"`
	IsAvailable bool     `json:"is_available"`
}

type menuCategory struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
}

// RegisterMenuRoutes registers the public menu view a customer lands on
// after scanning a table's QR sticker.
func RegisterMenuRoutes(r *gin.Engine, cfg HandlerConfig) {
	catalogStore := catalog.NewStore(cfg.DynamoDBClient, cfg.CatalogTables)
	metrics := awsx.NewMetrics(cfg.CloudWatchClient, cfg.MetricsNamespace)

	r.GET("/:locale/qr/:branchSlug/:tableCode", func(c *gin.Context) {
		ctx := c.Request.Context()
		locale := i18n.FromParam(c)

		branch, err := catalogStore.GetBranchBySlug(ctx, c.Param("branchSlug"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "menu_lookup_failed", "detail": err.Error()})
			return
		}
		if branch == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "invalid_qr"})
			return
		}

		table, err := catalogStore.GetTableByCode(ctx, c.Param("tableCode"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "menu_lookup_failed", "detail": err.Error()})
			return
		}
		// a valid code printed for another branch is still an invalid scan here
		if table == nil || table.BranchID != branch.ID {
			c.JSON(http.StatusNotFound, gin.H{"error": "invalid_qr"})
			return
		}

		cats, err := catalogStore.ListCategories(ctx, branch.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "menu_lookup_failed", "detail": err.Error()})
			return
		}
		prods, err := catalogStore.ListProducts(ctx, branch.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "menu_lookup_failed", "detail": err.Error()})
			return
		}

		// best-effort scan metric; a lost datapoint never blocks the menu
		if err := metrics.RecordQRScan(ctx, branch.ID, table.ID); err != nil {
			log.Printf("[menu] qr scan metric failed: %v", err)
		}

		outCats := make([]menuCategory, 0, len(cats))
		for _, cat := range cats {
			outCats = append(outCats, menuCategory{
				ID:   cat.ID,
				Name: i18n.Pick(cat.Name, locale),
				Type: cat.Type,
			})
		}
		outProds := make([]menuProduct, 0, len(prods))
		for _, p := range prods {
			outProds = append(outProds, menuProduct{
				ID:          p.ID,
				CategoryID:  p.CategoryID,
				Name:        i18n.Pick(p.Name, locale),
				Description: i18n.Pick(p.Description, locale),
				Price:       p.Price,
				Allergens:   p.Allergens,
				Badges:      p.Badges,
				IsAvailable: p.IsAvailable,
			})
		}

		c.JSON(http.StatusOK, gin.H{
			"branch": gin.H{
				"id":                  branch.ID,
				"name":                branch.Name,
				"slug":                branch.Slug,
				"currency":            branch.Currency,
				"is_ordering_enabled": branch.IsOrderingEnabled,
			},
			"table": gin.H{
				"id":   table.ID,
				"name": table.Name,
			},
			"categories": outCats,
			"products":   outProds,
			// internal navigation targets, locale-prefixed exactly once
			"links": gin.H{
				"cart":     i18n.Resolve("/cart", locale),
				"checkout": i18n.Resolve("/cart/checkout", locale),
			},
		})
	})
}
