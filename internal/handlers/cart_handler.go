package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ErenSahind/qr-menu/internal/awsx"
	"github.com/ErenSahind/qr-menu/internal/cart"
	"github.com/ErenSahind/qr-menu/internal/idempotency"
	"github.com/ErenSahind/qr-menu/internal/orders"
	"github.com/ErenSahind/qr-menu/internal/validation"
)

// sessionHeader carries the browsing session id. A first request without one
// gets a fresh id echoed back; the client sends it on every cart call after.
const sessionHeader = "X-Session-Id"

func sessionID(c *gin.Context) string {
	sid := c.GetHeader(sessionHeader)
	if sid == "" {
		sid = uuid.NewString()
	}
	c.Header(sessionHeader, sid)
	return sid
}

// RegisterCartRoutes registers the per-session cart surface and checkout.
func RegisterCartRoutes(r *gin.Engine, cfg HandlerConfig) {
	v := validation.New()
	idempStore := idempotency.NewStore(cfg.DynamoDBClient, cfg.IdempotencyTable, cfg.TTLWindow)
	ordersStore := orders.NewStore(cfg.DynamoDBClient, cfg.OrdersTable)
	publisher := awsx.NewPublisher(cfg.SQSClient, cfg.QueueURL)

	// engine rebuilds the session's cart from its durable slot
	engine := func(c *gin.Context) (*cart.Cart, string) {
		sid := sessionID(c)
		slot := cart.NewDynamoSlot(cfg.DynamoDBClient, cfg.CartTable, sid, cfg.CartTTL)
		return cart.New(c.Request.Context(), slot), sid
	}

	cartJSON := func(eng *cart.Cart, sid string) gin.H {
		return gin.H{
			"session_id":   sid,
			"items":        eng.Lines(),
			"total_amount": eng.TotalAmount(),
		}
	}

	g := r.Group("/:locale/cart")

	g.GET("", func(c *gin.Context) {
		eng, sid := engine(c)
		c.JSON(http.StatusOK, cartJSON(eng, sid))
	})

	g.POST("/items", func(c *gin.Context) {
		var req validation.AddLineRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}
		eng, sid := engine(c)
		eng.AddItem(c.Request.Context(), cart.Line{
			ProductID: req.ProductID,
			Name:      req.Name,
			UnitPrice: req.Price,
			Quantity:  req.Quantity,
			Options:   req.Options,
		})
		c.JSON(http.StatusOK, cartJSON(eng, sid))
	})

	g.PUT("/items/:productId", func(c *gin.Context) {
		var req validation.UpdateQuantityRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}
		eng, sid := engine(c)
		eng.UpdateQuantity(c.Request.Context(), c.Param("productId"), req.Quantity)
		c.JSON(http.StatusOK, cartJSON(eng, sid))
	})

	g.DELETE("/items/:productId", func(c *gin.Context) {
		eng, sid := engine(c)
		eng.RemoveItem(c.Request.Context(), c.Param("productId"))
		c.JSON(http.StatusOK, cartJSON(eng, sid))
	})

	g.POST("/clear", func(c *gin.Context) {
		eng, sid := engine(c)
		eng.Clear(c.Request.Context())
		c.JSON(http.StatusOK, cartJSON(eng, sid))
	})

	g.GET("/orders", func(c *gin.Context) {
		sid := sessionID(c)
		list, err := ordersStore.ListBySession(c.Request.Context(), sid)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "orders_lookup_failed", "detail": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"session_id": sid, "orders": list})
	})

	g.POST("/checkout", func(c *gin.Context) {
		ctx := c.Request.Context()

		var req validation.CheckoutRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		idempKey := c.GetHeader("Idempotency-Key")
		if idempKey == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing_idempotency_key"})
			return
		}

		eng, sid := engine(c)
		lines := eng.Lines()
		if len(lines) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "empty_cart"})
			return
		}

		orderID := uuid.NewString()
		now := time.Now().UTC()
		idempItem := map[string]interface{}{
			"idempotency_key": idempKey,
			"status":          idempotency.StatusInProgress,
			"created_at":      now.Format(time.RFC3339),
			"updated_at":      now.Format(time.RFC3339),
			"order_id":        orderID,
		}

		items := make([]orders.Item, 0, len(lines))
		for _, l := range lines {
			items = append(items, orders.Item{
				ProductID: l.ProductID,
				Name:      l.Name,
				Price:     l.UnitPrice,
				Quantity:  l.Quantity,
				Options:   l.Options,
			})
		}
		order := orders.Order{
			OrderID:           orderID,
			BranchID:          req.BranchID,
			TableID:           req.TableID,
			CustomerSessionID: sid,
			Status:            orders.StatusPending,
			TotalAmount:       eng.TotalAmount(),
			Items:             items,
			Note:              req.Note,
			CreatedAt:         now,
			UpdatedAt:         now,
		}

		err := ordersStore.CreateWithIdempotencyTransaction(ctx, cfg.IdempotencyTable, idempItem, order, cfg.TTLWindow)
		if err != nil {
			// Transaction failed, most likely because this idempotency key was
			// already used. Inspect the record and answer accordingly.
			rec, getErr := idempStore.Get(ctx, idempKey)
			if getErr != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "idempotency_check_failed", "detail": getErr.Error()})
				return
			}
			if rec == nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "transaction_failed_no_idempotency_record", "detail": err.Error()})
				return
			}
			switch rec.Status {
			case idempotency.StatusDone:
				if rec.ResponseBody != "" {
					var body interface{}
					if derr := json.Unmarshal([]byte(rec.ResponseBody), &body); derr == nil {
						c.Data(rec.ResponseStatus, "application/json", []byte(rec.ResponseBody))
						return
					}
					c.JSON(rec.ResponseStatus, gin.H{"response": rec.ResponseBody})
					return
				}
				c.JSON(http.StatusOK, gin.H{"order_id": rec.OrderID})
				return
			case idempotency.StatusInProgress:
				c.JSON(http.StatusAccepted, gin.H{"message": "request already in progress", "order_id": rec.OrderID})
				return
			case idempotency.StatusFailed:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "previous_attempt_failed", "order_id": rec.OrderID})
				return
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "unknown_idempotency_status"})
				return
			}
		}

		// Records created atomically; hand the order to the kitchen queue.
		// If the send fails we mark the idempotency record FAILED so the
		// client can retry with the same key.
		msgPayload := map[string]string{
			"order_id":        orderID,
			"idempotency_key": idempKey,
		}
		payloadBytes, _ := json.Marshal(msgPayload)

		attrs := map[string]string{
			"idempotency_key": idempKey,
			"order_id":        orderID,
			"correlation_id":  c.GetHeader("X-Request-Id"),
		}

		if err := publisher.SendOrderPlaced(ctx, string(payloadBytes), attrs); err != nil {
			_ = idempStore.MarkFailed(ctx, idempKey, fmt.Sprintf("sqs_send_failed: %v", err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "enqueue_failed", "detail": err.Error()})
			return
		}

		responseBody, _ := json.Marshal(gin.H{"order_id": orderID, "status": orders.StatusPending})
		_ = idempStore.MarkDone(ctx, idempKey, string(responseBody), http.StatusCreated)

		// the order is placed; the session starts its next round empty
		eng.Clear(ctx)

		c.Header("Location", fmt.Sprintf("/orders/%s", orderID))
		c.JSON(http.StatusCreated, gin.H{"order_id": orderID, "status": orders.StatusPending})
	})
}
