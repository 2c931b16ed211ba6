package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"letlalo-shop/internal/cart"
	"letlalo-shop/internal/domain"
	"letlalo-shop/internal/infra/paystack"
	"letlalo-shop/internal/infra/rabbitmq"
	"letlalo-shop/internal/repository"

	"github.com/go-redis/redis/v8"
)

const (
	// Free shipping applies at or above this subtotal; below it a flat
	// rate is charged. Amounts are in major currency units (naira).
	FreeShippingThreshold = int64(50000)
	FlatShippingCost      = int64(2500)
)

var (
	ErrCartEmpty            = errors.New("cart is empty")
	ErrOrderNotFound        = errors.New("order not found")
	ErrPaymentNotCompleted  = errors.New("payment not completed")
	ErrReconciliationFailed = errors.New("payment succeeded but order update failed")
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidationError reports a single invalid or missing checkout field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// CheckoutForm carries the shopper's shipping details.
type CheckoutForm struct {
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	AddressLine1  string
	AddressLine2  string
	City          string
	State         string
	Country       string
	PostalCode    string
	Notes         string
}

// CheckoutResult is handed back to the client so it can send the
// shopper to the hosted payment page.
type CheckoutResult struct {
	Order            *domain.Order
	AuthorizationURL string
	Reference        string
}

// CheckoutService drives the cart-to-confirmed-order transition. A
// checkout creates the pending order before payment opens, so a
// pending row always exists even if the shopper abandons the payment
// page; such orphans stay pending and are harmless.
type CheckoutService struct {
	orders      repository.OrderRepository
	history     repository.StatusHistoryRepository
	carts       cart.Store
	payments    paystack.ClientInterface
	publisher   rabbitmq.PublisherInterface
	redisClient *redis.Client
}

func NewCheckoutService(
	orders repository.OrderRepository,
	history repository.StatusHistoryRepository,
	carts cart.Store,
	payments paystack.ClientInterface,
	publisher rabbitmq.PublisherInterface,
) *CheckoutService {
	return &CheckoutService{
		orders:    orders,
		history:   history,
		carts:     carts,
		payments:  payments,
		publisher: publisher,
	}
}

// SetRedisClient enables per-session checkout-attempt tracking, which
// makes a retried StartCheckout reuse its pending order instead of
// inserting a duplicate.
func (s *CheckoutService) SetRedisClient(client *redis.Client) {
	s.redisClient = client
}

// ComputeTotals derives shipping and total from a subtotal. Totals are
// computed once at order creation and never recomputed afterwards.
func ComputeTotals(subtotal int64) (shipping, total int64) {
	if subtotal >= FreeShippingThreshold {
		shipping = 0
	} else {
		shipping = FlatShippingCost
	}
	return shipping, subtotal + shipping
}

func validateForm(form CheckoutForm) error {
	required := []struct {
		field, value, label string
	}{
		{"customer_name", form.CustomerName, "full name"},
		{"customer_email", form.CustomerEmail, "email"},
		{"customer_phone", form.CustomerPhone, "phone number"},
		{"address_line1", form.AddressLine1, "address line 1"},
		{"city", form.City, "city"},
		{"state", form.State, "state"},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return &ValidationError{Field: f.field, Message: "please fill in " + f.label}
		}
	}
	if !emailPattern.MatchString(form.CustomerEmail) {
		return &ValidationError{Field: "customer_email", Message: "please enter a valid email address"}
	}
	return nil
}

// StartCheckout validates the form, snapshots the session cart into a
// pending order and initializes the payment. The cart is not cleared
// here; that happens only after payment is confirmed.
func (s *CheckoutService) StartCheckout(ctx context.Context, sessionID string, form CheckoutForm) (*CheckoutResult, error) {
	if !s.payments.Configured() {
		return nil, paystack.ErrNotConfigured
	}

	if err := validateForm(form); err != nil {
		return nil, err
	}

	c, err := s.carts.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if c.IsEmpty() {
		return nil, ErrCartEmpty
	}

	subtotal := c.TotalPrice()
	shipping, total := ComputeTotals(subtotal)
	fingerprint := checkoutFingerprint(c, form)

	order, err := s.findReusableOrder(ctx, sessionID, fingerprint, total)
	if err != nil {
		return nil, err
	}

	if order == nil {
		order = buildOrder(c, form, subtotal, shipping, total)
		if err := s.orders.Save(order); err != nil {
			return nil, err
		}
		s.rememberAttempt(ctx, sessionID, fingerprint, order.PaymentReference)

		go s.publishEvent(context.Background(), "order.created", domain.OrderCreatedEvent{
			OrderID:     order.ID,
			OrderNumber: order.OrderNumber,
			Total:       order.Total,
			Currency:    order.Currency,
			CreatedAt:   order.CreatedAt,
		})
	}

	init, err := s.payments.InitializeTransaction(ctx, paystack.InitializeRequest{
		Email:     order.CustomerEmail,
		Amount:    order.Total,
		Currency:  order.Currency,
		Reference: order.PaymentReference,
		Metadata: map[string]string{
			"customer_name": order.CustomerName,
			"phone_number":  order.CustomerPhone,
		},
	})
	if err != nil {
		return nil, err
	}

	return &CheckoutResult{
		Order:            order,
		AuthorizationURL: init.AuthorizationURL,
		Reference:        order.PaymentReference,
	}, nil
}

func buildOrder(c *cart.Cart, form CheckoutForm, subtotal, shipping, total int64) *domain.Order {
	items := make(domain.OrderItems, 0, len(c.Lines))
	for _, line := range c.Lines {
		items = append(items, domain.OrderItem{
			ProductID:    line.Product.ID,
			ProductName:  line.Product.Name,
			ProductSlug:  line.Product.Slug,
			ProductImage: line.Product.FirstImage(),
			Quantity:     line.Quantity,
			Price:        line.Product.Price,
		})
	}

	country := form.Country
	if country == "" {
		country = "Nigeria"
	}

	return &domain.Order{
		OrderNumber:   paystack.NewOrderNumber(),
		CustomerName:  form.CustomerName,
		CustomerEmail: form.CustomerEmail,
		CustomerPhone: form.CustomerPhone,
		ShippingAddress: domain.ShippingAddress{
			FullName:     form.CustomerName,
			Phone:        form.CustomerPhone,
			AddressLine1: form.AddressLine1,
			AddressLine2: form.AddressLine2,
			City:         form.City,
			State:        form.State,
			Country:      country,
			PostalCode:   form.PostalCode,
		},
		Items:            items,
		Subtotal:         subtotal,
		ShippingCost:     shipping,
		Total:            total,
		Currency:         "NGN",
		Status:           domain.StatusPending,
		PaymentStatus:    domain.PaymentPending,
		PaymentReference: paystack.NewReference(),
		Notes:            form.Notes,
	}
}

// checkoutFingerprint identifies one checkout attempt: the exact cart
// lines plus the shipping details. Any cart or form change produces a
// new fingerprint, and with it a fresh pending order on retry.
func checkoutFingerprint(c *cart.Cart, form CheckoutForm) string {
	type line struct {
		ProductID uint  `json:"product_id"`
		Quantity  int   `json:"quantity"`
		Price     int64 `json:"price"`
	}
	lines := make([]line, 0, len(c.Lines))
	for _, l := range c.Lines {
		lines = append(lines, line{ProductID: l.Product.ID, Quantity: l.Quantity, Price: l.Product.Price})
	}
	payload, _ := json.Marshal(struct {
		Lines []line       `json:"lines"`
		Form  CheckoutForm `json:"form"`
	}{Lines: lines, Form: form})
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}

// findReusableOrder returns the session's in-flight pending order when
// a previous StartCheckout already created one for the same cart
// contents, shipping details and total.
func (s *CheckoutService) findReusableOrder(ctx context.Context, sessionID, fingerprint string, total int64) (*domain.Order, error) {
	if s.redisClient == nil {
		return nil, nil
	}
	val, err := s.redisClient.Get(ctx, attemptKey(sessionID)).Result()
	if err != nil {
		return nil, nil
	}
	storedFingerprint, reference, ok := strings.Cut(val, "|")
	if !ok || storedFingerprint != fingerprint {
		return nil, nil
	}
	order, err := s.orders.FindByReference(reference)
	if err != nil {
		return nil, err
	}
	if order == nil || order.PaymentStatus != domain.PaymentPending || order.Total != total {
		return nil, nil
	}
	return order, nil
}

func (s *CheckoutService) rememberAttempt(ctx context.Context, sessionID, fingerprint, reference string) {
	if s.redisClient == nil {
		return
	}
	if err := s.redisClient.Set(ctx, attemptKey(sessionID), fingerprint+"|"+reference, time.Hour).Err(); err != nil {
		log.Printf("failed to remember checkout attempt: %v", err)
	}
}

func (s *CheckoutService) forgetAttempt(ctx context.Context, sessionID string) {
	if s.redisClient == nil {
		return
	}
	s.redisClient.Del(ctx, attemptKey(sessionID))
}

func attemptKey(sessionID string) string {
	return "checkout:" + sessionID
}

// CompletePayment is the success path: it verifies the transaction
// with Paystack and confirms the order exactly once. A duplicate
// callback for an already-confirmed order is benign. Failures after
// the payment verified are reported as reconciliation errors; nothing
// is retried or rolled back.
func (s *CheckoutService) CompletePayment(ctx context.Context, sessionID, reference string) (*domain.Order, error) {
	verify, err := s.payments.VerifyTransaction(ctx, reference)
	if err != nil {
		return nil, err
	}
	if verify == nil {
		return nil, ErrOrderNotFound
	}
	if !verify.Paid() {
		return nil, ErrPaymentNotCompleted
	}

	order, confirmed, err := s.orders.ConfirmPayment(reference)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReconciliationFailed, err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if !confirmed {
		// Already confirmed by a concurrent callback.
		return order, nil
	}

	if err := s.history.Append(&domain.OrderStatusHistory{
		OrderID: order.ID,
		Status:  domain.StatusConfirmed,
		Notes:   "Payment successful",
	}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReconciliationFailed, err)
	}

	if sessionID != "" {
		if err := s.carts.Delete(ctx, sessionID); err != nil {
			log.Printf("failed to clear cart for session %s: %v", sessionID, err)
		}
		s.forgetAttempt(ctx, sessionID)
	}

	go s.publishEvent(context.Background(), "order.confirmed", domain.OrderConfirmedEvent{
		OrderID:          order.ID,
		OrderNumber:      order.OrderNumber,
		PaymentReference: reference,
		Total:            order.Total,
		ConfirmedAt:      time.Now(),
	})

	return order, nil
}

// ReconcilePending sweeps orders stuck in payment pending and confirms
// any that actually settled on the processor side. Covers shoppers who
// paid but never returned from the payment page.
func (s *CheckoutService) ReconcilePending(ctx context.Context, minAge time.Duration) error {
	stale, err := s.orders.FindPendingPaymentBefore(time.Now().Add(-minAge))
	if err != nil {
		return err
	}

	for _, order := range stale {
		_, err := s.CompletePayment(ctx, "", order.PaymentReference)
		switch {
		case err == nil:
			log.Printf("reconcile: confirmed stale order %s", order.OrderNumber)
		case errors.Is(err, ErrPaymentNotCompleted), errors.Is(err, ErrOrderNotFound):
			// Still unpaid, leave the orphan alone.
		default:
			log.Printf("reconcile: confirm %s: %v", order.PaymentReference, err)
		}
	}
	return nil
}

func (s *CheckoutService) publishEvent(ctx context.Context, pattern string, data interface{}) {
	if err := s.publisher.Publish(ctx, pattern, data); err != nil {
		log.Printf("failed to publish %s event: %v", pattern, err)
	}
}
