package http

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"letlalo-shop/internal/cart"
	"letlalo-shop/internal/domain"
	"letlalo-shop/internal/infra/paystack"
	"letlalo-shop/internal/services"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	catalog    *services.CatalogService
	checkout   *services.CheckoutService
	orders     *services.OrderService
	admin      *services.OrderAdminService
	carts      cart.Store
	adminToken string
}

func NewHandler(
	catalog *services.CatalogService,
	checkout *services.CheckoutService,
	orders *services.OrderService,
	admin *services.OrderAdminService,
	carts cart.Store,
	adminToken string,
) *Handler {
	return &Handler{
		catalog:    catalog,
		checkout:   checkout,
		orders:     orders,
		admin:      admin,
		carts:      carts,
		adminToken: adminToken,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/products", h.ListProducts)
	r.GET("/products/:slug", h.GetProduct)
	r.GET("/categories", h.ListCategories)

	r.GET("/cart", h.GetCart)
	r.POST("/cart/items", h.AddCartItem)
	r.PUT("/cart/items/:productId", h.UpdateCartItem)
	r.DELETE("/cart/items/:productId", h.RemoveCartItem)
	r.POST("/cart/toggle", h.ToggleCart)

	r.POST("/checkout", h.StartCheckout)
	r.GET("/checkout/verify/:reference", h.VerifyPayment)

	r.GET("/track-order", h.TrackOrder)
	r.GET("/orders/:orderNumber", h.GetOrderByNumber)

	admin := r.Group("/admin", h.requireAdmin)
	{
		admin.GET("/orders", h.AdminListOrders)
		admin.PUT("/orders/:id", h.AdminUpdateOrder)
		admin.GET("/products", h.AdminListProducts)
		admin.POST("/products", h.AdminCreateProduct)
		admin.PUT("/products/:id", h.AdminUpdateProduct)
		admin.POST("/products/:id/toggle-visibility", h.AdminToggleVisibility)
		admin.DELETE("/products/:id", h.AdminDeleteProduct)
	}
}

// requireAdmin gates the admin group behind a shared secret. Full auth
// is delegated to the deployment's identity provider; this guards the
// API surface itself.
func (h *Handler) requireAdmin(c *gin.Context) {
	if h.adminToken == "" || c.GetHeader("X-Admin-Token") != h.adminToken {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	c.Next()
}

func sessionID(c *gin.Context) string {
	return c.GetHeader("X-Session-ID")
}

func (h *Handler) ListProducts(c *gin.Context) {
	products, err := h.catalog.ListVisible(c.Request.Context(), c.Query("category"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *Handler) GetProduct(c *gin.Context) {
	product, err := h.catalog.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.catalog.ListCategories(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *Handler) GetCart(c *gin.Context) {
	session := sessionID(c)
	if session == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "X-Session-ID header required"})
		return
	}
	ct, err := h.carts.Load(c.Request.Context(), session)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cartView(ct))
}

func (h *Handler) AddCartItem(c *gin.Context) {
	session := sessionID(c)
	if session == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "X-Session-ID header required"})
		return
	}

	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	product, err := h.catalog.GetByID(ctx, req.ProductID)
	if err != nil {
		writeError(c, err)
		return
	}

	ct, err := h.carts.Load(ctx, session)
	if err != nil {
		writeError(c, err)
		return
	}

	ct.AddItem(*product, req.Quantity)
	h.saveCart(c, session, ct)
	c.JSON(http.StatusOK, cartView(ct))
}

func (h *Handler) UpdateCartItem(c *gin.Context) {
	session := sessionID(c)
	if session == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "X-Session-ID header required"})
		return
	}

	productID, err := strconv.ParseUint(c.Param("productId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	var req UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	ct, err := h.carts.Load(ctx, session)
	if err != nil {
		writeError(c, err)
		return
	}

	ct.UpdateQuantity(uint(productID), req.Quantity)
	h.saveCart(c, session, ct)
	c.JSON(http.StatusOK, cartView(ct))
}

func (h *Handler) RemoveCartItem(c *gin.Context) {
	session := sessionID(c)
	if session == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "X-Session-ID header required"})
		return
	}

	productID, err := strconv.ParseUint(c.Param("productId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	ctx := c.Request.Context()
	ct, err := h.carts.Load(ctx, session)
	if err != nil {
		writeError(c, err)
		return
	}

	ct.RemoveItem(uint(productID))
	h.saveCart(c, session, ct)
	c.JSON(http.StatusOK, cartView(ct))
}

func (h *Handler) ToggleCart(c *gin.Context) {
	session := sessionID(c)
	if session == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "X-Session-ID header required"})
		return
	}

	ctx := c.Request.Context()
	ct, err := h.carts.Load(ctx, session)
	if err != nil {
		writeError(c, err)
		return
	}

	ct.TogglePanel()
	h.saveCart(c, session, ct)
	c.JSON(http.StatusOK, cartView(ct))
}

// saveCart persists best-effort: a failed write is logged but never
// fails the mutation the shopper just made.
func (h *Handler) saveCart(c *gin.Context, session string, ct *cart.Cart) {
	if err := h.carts.Save(c.Request.Context(), session, ct); err != nil {
		log.Printf("failed to persist cart for session %s: %v", session, err)
	}
}

func cartView(ct *cart.Cart) gin.H {
	return gin.H{
		"lines":       ct.Lines,
		"open":        ct.Open,
		"total_items": ct.TotalItems(),
		"total_price": ct.TotalPrice(),
	}
}

func (h *Handler) StartCheckout(c *gin.Context) {
	session := sessionID(c)
	if session == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "X-Session-ID header required"})
		return
	}

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.checkout.StartCheckout(c.Request.Context(), session, services.CheckoutForm{
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		AddressLine1:  req.AddressLine1,
		AddressLine2:  req.AddressLine2,
		City:          req.City,
		State:         req.State,
		Country:       req.Country,
		PostalCode:    req.PostalCode,
		Notes:         req.Notes,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, CheckoutResponse{
		OrderNumber:      result.Order.OrderNumber,
		Reference:        result.Reference,
		AuthorizationURL: result.AuthorizationURL,
		Subtotal:         result.Order.Subtotal,
		ShippingCost:     result.Order.ShippingCost,
		Total:            result.Order.Total,
		DisplayTotal:     paystack.FormatAmount(result.Order.Total, result.Order.Currency),
	})
}

func (h *Handler) VerifyPayment(c *gin.Context) {
	order, err := h.checkout.CompletePayment(c.Request.Context(), sessionID(c), c.Param("reference"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) TrackOrder(c *gin.Context) {
	orderNumber := c.Query("order_number")
	email := c.Query("email")
	if orderNumber == "" || email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "order_number and email required"})
		return
	}

	result, err := h.orders.TrackOrder(c.Request.Context(), orderNumber, email)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) GetOrderByNumber(c *gin.Context) {
	result, err := h.orders.GetByNumber(c.Request.Context(), c.Param("orderNumber"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) AdminListOrders(c *gin.Context) {
	orders, err := h.admin.ListOrders(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *Handler) AdminUpdateOrder(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	var req UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.admin.UpdateOrder(c.Request.Context(), uint(id), domain.OrderStatus(req.Status), req.TrackingNumber, req.Notes)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) AdminListProducts(c *gin.Context) {
	products, err := h.catalog.ListAll(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *Handler) AdminCreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := h.catalog.CreateProduct(c.Request.Context(), productInput(req))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *Handler) AdminUpdateProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := h.catalog.UpdateProduct(c.Request.Context(), uint(id), productInput(req))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *Handler) AdminToggleVisibility(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	product, err := h.catalog.ToggleVisibility(c.Request.Context(), uint(id))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *Handler) AdminDeleteProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	if err := h.catalog.DeleteProduct(c.Request.Context(), uint(id)); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

func productInput(req ProductRequest) services.ProductInput {
	return services.ProductInput{
		Name:           req.Name,
		Description:    req.Description,
		Price:          req.Price,
		Currency:       req.Currency,
		Images:         req.Images,
		Category:       req.Category,
		InventoryCount: req.InventoryCount,
		IsVisible:      req.IsVisible,
		IsSoldOut:      req.IsSoldOut,
	}
}

// writeError maps boundary errors to user-facing notices; nothing
// propagates as an uncaught fault.
func writeError(c *gin.Context, err error) {
	var vErr *services.ValidationError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Message, "field": vErr.Field})
	case errors.Is(err, services.ErrCartEmpty):
		c.JSON(http.StatusBadRequest, gin.H{"error": "cart is empty"})
	case errors.Is(err, services.ErrOrderNotFound), errors.Is(err, services.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, services.ErrPaymentNotCompleted):
		c.JSON(http.StatusBadRequest, gin.H{"error": "payment not completed"})
	case errors.Is(err, paystack.ErrNotConfigured):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "payment system not configured, please contact support"})
	case errors.Is(err, services.ErrReconciliationFailed):
		c.JSON(http.StatusBadGateway, gin.H{"error": "payment successful but order update failed, please contact support"})
	default:
		log.Printf("request failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong, please try again"})
	}
}
