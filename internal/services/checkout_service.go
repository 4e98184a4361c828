package services

import (
	"errors"
	"fmt"
	"log"
	"math"

	"solestore/internal/apperrors"
	"solestore/internal/models"
	"solestore/internal/payments"
	"solestore/internal/repositories"
	"solestore/pkg/rabbitmq"
)

// OrderInput is the confirmation payload for placing an order after
// the client has completed the payment flow in the browser.
type OrderInput struct {
	ShippingAddress models.ShippingAddress
	PaymentMethod   string
	PaymentID       string
	PaymentStatus   string
}

// reservation tracks a stock decrement that may need compensating.
type reservation struct {
	shoeID   string
	quantity int
}

// CheckoutService orchestrates the checkout flow: cart validation,
// authoritative total, payment authorization, confirmation-time stock
// reservation, order snapshot, and cart reset. The flow is a
// sequential saga: stock is reserved with atomic conditional
// decrements before the order is committed, and reserved stock is
// restored if a later step fails. Only the final cart clear can leave
// an inconsistency, which is surfaced as a ReconciliationError and
// published for operators.
type CheckoutService struct {
	cartRepo  repositories.CartRepository
	shoeRepo  repositories.ShoeRepository
	orderRepo repositories.OrderRepository
	gateway   payments.Gateway
	mqClient  *rabbitmq.Client
	currency  string
}

// NewCheckoutService creates a new CheckoutService. mqClient may be
// nil; event publishing is then skipped.
func NewCheckoutService(
	cartRepo repositories.CartRepository,
	shoeRepo repositories.ShoeRepository,
	orderRepo repositories.OrderRepository,
	gateway payments.Gateway,
	mqClient *rabbitmq.Client,
	currency string,
) *CheckoutService {
	if currency == "" {
		currency = "inr"
	}
	return &CheckoutService{
		cartRepo:  cartRepo,
		shoeRepo:  shoeRepo,
		orderRepo: orderRepo,
		gateway:   gateway,
		mqClient:  mqClient,
		currency:  currency,
	}
}

// SubunitAmount converts a price into the smallest currency subunit,
// rounding half away from zero.
func SubunitAmount(price float64) int64 {
	return int64(math.Round(price * 100))
}

// CreatePaymentIntent recomputes the cart total from current catalog
// prices and requests an authorization from the payment collaborator.
// The total is never taken from client input or from a stale stored
// value, so price tampering cannot change the charged amount.
func (s *CheckoutService) CreatePaymentIntent(userID string) (*payments.Intent, error) {
	cart, err := s.loadCart(userID)
	if err != nil {
		return nil, err
	}

	amount := SubunitAmount(cart.TotalPrice())
	intent, err := s.gateway.CreateIntent(amount, s.currency)
	if err != nil {
		// A collaborator timeout or error is a failed authorization.
		return nil, apperrors.NewPaymentFailed("Payment authorization failed.").Wrap(err)
	}
	return intent, nil
}

// PlaceOrder confirms a checkout: it re-validates and reserves stock,
// snapshots the cart into an immutable order, and clears the cart.
// Stock is re-checked here even though add-to-cart checked it, because
// time has passed since the cart was built.
func (s *CheckoutService) PlaceOrder(userID string, input OrderInput) (*models.Order, error) {
	if input.ShippingAddress.Street == "" || input.ShippingAddress.City == "" ||
		input.ShippingAddress.State == "" || input.ShippingAddress.PostalCode == "" ||
		input.ShippingAddress.Country == "" || input.PaymentMethod == "" {
		return nil, apperrors.NewValidation("Shipping address and payment method are required.")
	}
	if !models.ValidPaymentMethods[input.PaymentMethod] {
		return nil, apperrors.NewValidation(fmt.Sprintf("Unsupported payment method: %s", input.PaymentMethod))
	}

	cart, err := s.loadCart(userID)
	if err != nil {
		return nil, err
	}

	if input.PaymentStatus != models.PaymentStatusCompleted {
		return nil, apperrors.NewPaymentFailed("Payment was not completed.")
	}

	// Re-validate and reserve stock per line item. The conditional
	// decrement is atomic, so two checkouts racing for the last unit
	// cannot both pass; the loser aborts cleanly before any order
	// exists.
	var reserved []reservation
	var orderItems []models.OrderItem
	var totalPrice float64

	for _, item := range cart.Items {
		shoe := item.Shoe
		if shoe == nil {
			s.restock(reserved)
			return nil, apperrors.NewNotFound("Shoe not found.")
		}

		if err := s.shoeRepo.DecrementStock(shoe.ID, item.Quantity); err != nil {
			s.restock(reserved)
			if errors.Is(err, repositories.ErrInsufficientStock) {
				remaining := shoe.Stock
				if current, lookupErr := s.shoeRepo.GetByID(shoe.ID); lookupErr == nil {
					remaining = current.Stock
				}
				return nil, &apperrors.InsufficientStockError{
					ShoeName:  shoe.Name,
					Requested: item.Quantity,
					Remaining: remaining,
				}
			}
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, apperrors.NewNotFound("Shoe not found.")
			}
			return nil, fmt.Errorf("failed to reserve stock: %w", err)
		}
		reserved = append(reserved, reservation{shoeID: shoe.ID, quantity: item.Quantity})

		totalPrice += float64(item.Quantity) * shoe.Price
		orderItems = append(orderItems, models.OrderItem{
			ShoeID:   shoe.ID,
			Quantity: item.Quantity,
			Price:    shoe.Price, // price at the time of order
			Size:     item.Size,
			Name:     shoe.Name, // name at the time of order
		})
	}

	order := &models.Order{
		OwnerID:         userID,
		Items:           orderItems,
		TotalPrice:      totalPrice,
		ShippingAddress: input.ShippingAddress,
		PaymentDetails: models.PaymentDetails{
			PaymentID:     input.PaymentID,
			PaymentMethod: input.PaymentMethod,
			PaymentStatus: models.PaymentStatusCompleted,
		},
		OrderStatus: models.OrderStatusPending,
	}

	if err := s.orderRepo.Create(order); err != nil {
		s.restock(reserved)
		return nil, apperrors.NewInternal("Something went wrong while creating the order.").Wrap(err)
	}

	if err := s.cartRepo.ClearItems(cart.ID); err != nil {
		// The order is committed and stock is decremented; only the
		// cart clear failed. Surface it for operators instead of
		// retrying or rolling back.
		recErr := &apperrors.ReconciliationError{OrderID: order.ID, Err: err}
		log.Printf("RECONCILIATION NEEDED: %v", recErr)
		s.publishEvent(map[string]interface{}{
			"event":   "order.reconciliation_needed",
			"orderID": order.ID,
			"userID":  userID,
			"reason":  err.Error(),
		})
		return order, recErr
	}

	s.publishEvent(map[string]interface{}{
		"event":   "order.created",
		"orderID": order.ID,
		"userID":  userID,
		"status":  order.OrderStatus,
		"total":   order.TotalPrice,
	})

	return order, nil
}

// loadCart returns the user's resolved cart, rejecting empty carts.
func (s *CheckoutService) loadCart(userID string) (*models.Cart, error) {
	cart, err := s.cartRepo.GetByOwner(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrEmptyCart
		}
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if len(cart.Items) == 0 {
		return nil, apperrors.ErrEmptyCart
	}
	return cart, nil
}

// restock compensates reservations made before an aborted checkout.
func (s *CheckoutService) restock(reserved []reservation) {
	for _, res := range reserved {
		if err := s.shoeRepo.IncrementStock(res.shoeID, res.quantity); err != nil {
			log.Printf("Warning: failed to restock shoe %s after aborted checkout: %v", res.shoeID, err)
		}
	}
}

// publishEvent publishes best-effort: a broker failure is logged and
// never fails the checkout.
func (s *CheckoutService) publishEvent(event map[string]interface{}) {
	if s.mqClient == nil {
		return
	}
	if err := s.mqClient.PublishJSON(event); err != nil {
		log.Printf("Warning: failed to publish %v event: %v", event["event"], err)
	}
}
