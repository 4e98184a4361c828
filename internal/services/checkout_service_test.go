package services_test

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"solestore/internal/apperrors"
	"solestore/internal/models"
	"solestore/internal/payments"
	"solestore/internal/repositories"
	"solestore/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockGateway is a mock implementation of payments.Gateway.
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) CreateIntent(amount int64, currency string) (*payments.Intent, error) {
	args := m.Called(amount, currency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payments.Intent), args.Error(1)
}

type checkoutFixture struct {
	shoeRepo  *repositories.MockShoeRepository
	cartRepo  *repositories.MockCartRepository
	orderRepo *repositories.MockOrderRepository
	gateway   *MockGateway
	checkout  *services.CheckoutService
}

func newCheckoutFixture() *checkoutFixture {
	shoeRepo := repositories.NewMockShoeRepository()
	cartRepo := repositories.NewMockCartRepository(shoeRepo)
	orderRepo := repositories.NewMockOrderRepository()
	gateway := new(MockGateway)
	checkout := services.NewCheckoutService(cartRepo, shoeRepo, orderRepo, gateway, nil, "inr")
	return &checkoutFixture{
		shoeRepo:  shoeRepo,
		cartRepo:  cartRepo,
		orderRepo: orderRepo,
		gateway:   gateway,
		checkout:  checkout,
	}
}

func (f *checkoutFixture) seedShoe(t *testing.T, name string, price float64, stock int) *models.Shoe {
	t.Helper()
	shoe := &models.Shoe{Name: name, Price: price, Stock: stock, Brand: "Acme", Category: "sneakers"}
	shoe.SetSizes([]string{"8", "9", "10"})
	assert.NoError(t, f.shoeRepo.Create(shoe))
	return shoe
}

func (f *checkoutFixture) seedCart(t *testing.T, userID string, items ...models.CartItem) *models.Cart {
	t.Helper()
	cart := &models.Cart{OwnerID: userID}
	assert.NoError(t, f.cartRepo.Create(cart))
	for i := range items {
		assert.NoError(t, f.cartRepo.AddItem(cart.ID, &items[i]))
	}
	return cart
}

func validOrderInput() services.OrderInput {
	return services.OrderInput{
		ShippingAddress: models.ShippingAddress{
			Street:     "12 MG Road",
			City:       "Bengaluru",
			State:      "Karnataka",
			PostalCode: "560001",
			Country:    "India",
		},
		PaymentMethod: "Stripe",
		PaymentID:     "pi_test_123",
		PaymentStatus: models.PaymentStatusCompleted,
	}
}

func TestSubunitAmount(t *testing.T) {
	assert.Equal(t, int64(400000), services.SubunitAmount(4000))
	assert.Equal(t, int64(1000), services.SubunitAmount(10))
	// Half subunits round away from zero.
	assert.Equal(t, int64(1235), services.SubunitAmount(12.345))
	assert.Equal(t, int64(0), services.SubunitAmount(0.004))
	assert.Equal(t, int64(1), services.SubunitAmount(0.006))
}

func TestCreatePaymentIntent_EmptyCart(t *testing.T) {
	f := newCheckoutFixture()
	f.seedCart(t, "user-1")

	intent, err := f.checkout.CreatePaymentIntent("user-1")
	assert.Nil(t, intent)
	assert.ErrorIs(t, err, apperrors.ErrEmptyCart)

	// A user with no cart at all gets the same answer.
	intent, err = f.checkout.CreatePaymentIntent("user-2")
	assert.Nil(t, intent)
	assert.ErrorIs(t, err, apperrors.ErrEmptyCart)

	f.gateway.AssertNotCalled(t, "CreateIntent", mock.Anything, mock.Anything)
}

func TestCreatePaymentIntent_AuthorizesRecomputedTotal(t *testing.T) {
	f := newCheckoutFixture()
	shoe := f.seedShoe(t, "Runner", 2000, 5)
	f.seedCart(t, "user-1", models.CartItem{ShoeID: shoe.ID, Quantity: 2, Size: "9"})

	f.gateway.On("CreateIntent", int64(400000), "inr").
		Return(&payments.Intent{ID: "pi_1", ClientSecret: "pi_1_secret", Amount: 400000, Currency: "inr"}, nil).Once()

	intent, err := f.checkout.CreatePaymentIntent("user-1")
	assert.NoError(t, err)
	assert.Equal(t, "pi_1_secret", intent.ClientSecret)
	f.gateway.AssertExpectations(t)
}

func TestCreatePaymentIntent_GatewayFailureIsPaymentFailed(t *testing.T) {
	f := newCheckoutFixture()
	shoe := f.seedShoe(t, "Runner", 2000, 5)
	f.seedCart(t, "user-1", models.CartItem{ShoeID: shoe.ID, Quantity: 1, Size: "9"})

	f.gateway.On("CreateIntent", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("gateway timeout")).Once()

	intent, err := f.checkout.CreatePaymentIntent("user-1")
	assert.Nil(t, intent)
	var apiErr *apperrors.APIError
	assert.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 402, apiErr.StatusCode)
}

func TestPlaceOrder_EmptyCartCreatesNothing(t *testing.T) {
	f := newCheckoutFixture()
	f.seedCart(t, "user-1")

	order, err := f.checkout.PlaceOrder("user-1", validOrderInput())
	assert.Nil(t, order)
	assert.ErrorIs(t, err, apperrors.ErrEmptyCart)

	count, _ := f.orderRepo.Count()
	assert.Equal(t, int64(0), count)
}

func TestPlaceOrder_Success(t *testing.T) {
	f := newCheckoutFixture()
	shoe := f.seedShoe(t, "Runner", 2000, 5)
	f.seedCart(t, "user-1", models.CartItem{ShoeID: shoe.ID, Quantity: 2, Size: "9"})

	order, err := f.checkout.PlaceOrder("user-1", validOrderInput())
	assert.NoError(t, err)
	assert.NotNil(t, order)

	assert.Equal(t, 4000.0, order.TotalPrice)
	assert.Equal(t, models.OrderStatusPending, order.OrderStatus)
	assert.Equal(t, models.PaymentStatusCompleted, order.PaymentDetails.PaymentStatus)
	assert.Equal(t, "pi_test_123", order.PaymentDetails.PaymentID)
	assert.Len(t, order.Items, 1)
	assert.Equal(t, "Runner", order.Items[0].Name)
	assert.Equal(t, 2000.0, order.Items[0].Price)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.Equal(t, "9", order.Items[0].Size)

	// Stock decreased by exactly the purchased quantity.
	updated, err := f.shoeRepo.GetByID(shoe.ID)
	assert.NoError(t, err)
	assert.Equal(t, 3, updated.Stock)

	// Cart is now empty.
	cart, err := f.cartRepo.GetByOwner("user-1")
	assert.NoError(t, err)
	assert.Len(t, cart.Items, 0)

	// Re-running checkout on the now-empty cart is not a duplicate
	// order, it fails with an empty-cart error.
	again, err := f.checkout.PlaceOrder("user-1", validOrderInput())
	assert.Nil(t, again)
	assert.ErrorIs(t, err, apperrors.ErrEmptyCart)

	count, _ := f.orderRepo.Count()
	assert.Equal(t, int64(1), count)
}

func TestPlaceOrder_PaymentNotCompleted(t *testing.T) {
	f := newCheckoutFixture()
	shoe := f.seedShoe(t, "Runner", 2000, 5)
	f.seedCart(t, "user-1", models.CartItem{ShoeID: shoe.ID, Quantity: 1, Size: "9"})

	input := validOrderInput()
	input.PaymentStatus = models.PaymentStatusFailed

	order, err := f.checkout.PlaceOrder("user-1", input)
	assert.Nil(t, order)
	var apiErr *apperrors.APIError
	assert.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 402, apiErr.StatusCode)

	// No side effects: stock untouched, no order.
	updated, _ := f.shoeRepo.GetByID(shoe.ID)
	assert.Equal(t, 5, updated.Stock)
	count, _ := f.orderRepo.Count()
	assert.Equal(t, int64(0), count)
}

func TestPlaceOrder_MissingShippingAddress(t *testing.T) {
	f := newCheckoutFixture()
	shoe := f.seedShoe(t, "Runner", 2000, 5)
	f.seedCart(t, "user-1", models.CartItem{ShoeID: shoe.ID, Quantity: 1, Size: "9"})

	input := validOrderInput()
	input.ShippingAddress.City = ""

	order, err := f.checkout.PlaceOrder("user-1", input)
	assert.Nil(t, order)
	var apiErr *apperrors.APIError
	assert.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 400, apiErr.StatusCode)
}

func TestPlaceOrder_UnsupportedPaymentMethod(t *testing.T) {
	f := newCheckoutFixture()
	shoe := f.seedShoe(t, "Runner", 2000, 5)
	f.seedCart(t, "user-1", models.CartItem{ShoeID: shoe.ID, Quantity: 1, Size: "9"})

	input := validOrderInput()
	input.PaymentMethod = "Cheque"

	order, err := f.checkout.PlaceOrder("user-1", input)
	assert.Nil(t, order)
	var apiErr *apperrors.APIError
	assert.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 400, apiErr.StatusCode)
}

func TestPlaceOrder_StockDroppedSinceAddToCart(t *testing.T) {
	f := newCheckoutFixture()
	shoe := f.seedShoe(t, "Runner", 2000, 5)
	f.seedCart(t, "user-1", models.CartItem{ShoeID: shoe.ID, Quantity: 2, Size: "9"})

	// Time passes: another sale drains the stock below the requested
	// quantity before confirmation.
	assert.NoError(t, f.shoeRepo.DecrementStock(shoe.ID, 4))

	order, err := f.checkout.PlaceOrder("user-1", validOrderInput())
	assert.Nil(t, order)

	var stockErr *apperrors.InsufficientStockError
	assert.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Runner", stockErr.ShoeName)
	assert.Equal(t, 1, stockErr.Remaining)

	// Clean abort: no order, stock unchanged.
	count, _ := f.orderRepo.Count()
	assert.Equal(t, int64(0), count)
	updated, _ := f.shoeRepo.GetByID(shoe.ID)
	assert.Equal(t, 1, updated.Stock)
}

func TestPlaceOrder_CompensatesEarlierReservations(t *testing.T) {
	f := newCheckoutFixture()
	plenty := f.seedShoe(t, "Plenty", 1000, 10)
	scarce := f.seedShoe(t, "Scarce", 3000, 1)
	f.seedCart(t, "user-1",
		models.CartItem{ShoeID: plenty.ID, Quantity: 2, Size: "8"},
		models.CartItem{ShoeID: scarce.ID, Quantity: 2, Size: "9"},
	)

	order, err := f.checkout.PlaceOrder("user-1", validOrderInput())
	assert.Nil(t, order)

	var stockErr *apperrors.InsufficientStockError
	assert.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Scarce", stockErr.ShoeName)

	// The reservation on the first shoe was rolled back.
	restored, _ := f.shoeRepo.GetByID(plenty.ID)
	assert.Equal(t, 10, restored.Stock)
	untouched, _ := f.shoeRepo.GetByID(scarce.ID)
	assert.Equal(t, 1, untouched.Stock)
}

func TestPlaceOrder_ConcurrentCheckoutsForLastUnit(t *testing.T) {
	f := newCheckoutFixture()
	shoe := f.seedShoe(t, "LastPair", 5000, 1)
	f.seedCart(t, "user-a", models.CartItem{ShoeID: shoe.ID, Quantity: 1, Size: "9"})
	f.seedCart(t, "user-b", models.CartItem{ShoeID: shoe.ID, Quantity: 1, Size: "9"})

	results := make([]error, 2)
	var wg sync.WaitGroup
	for i, user := range []string{"user-a", "user-b"} {
		wg.Add(1)
		go func(i int, user string) {
			defer wg.Done()
			_, err := f.checkout.PlaceOrder(user, validOrderInput())
			results[i] = err
		}(i, user)
	}
	wg.Wait()

	var successes, stockFailures int
	for _, err := range results {
		if err == nil {
			successes++
			continue
		}
		var stockErr *apperrors.InsufficientStockError
		if errors.As(err, &stockErr) {
			stockFailures++
		}
	}
	assert.Equal(t, 1, successes, "exactly one checkout must win the last unit")
	assert.Equal(t, 1, stockFailures, "the loser must see an insufficient stock error")

	// Stock never goes negative.
	updated, _ := f.shoeRepo.GetByID(shoe.ID)
	assert.Equal(t, 0, updated.Stock)
	count, _ := f.orderRepo.Count()
	assert.Equal(t, int64(1), count)
}

func TestPlaceOrder_TotalMatchesAuthorizedAmount(t *testing.T) {
	f := newCheckoutFixture()
	shoe := f.seedShoe(t, "Runner", 1499.5, 5)
	f.seedCart(t, "user-1", models.CartItem{ShoeID: shoe.ID, Quantity: 3, Size: "9"})

	var authorized int64
	f.gateway.On("CreateIntent", mock.Anything, "inr").
		Run(func(args mock.Arguments) { authorized = args.Get(0).(int64) }).
		Return(&payments.Intent{ID: "pi_2", ClientSecret: "pi_2_secret"}, nil).Once()

	_, err := f.checkout.CreatePaymentIntent("user-1")
	assert.NoError(t, err)

	order, err := f.checkout.PlaceOrder("user-1", validOrderInput())
	assert.NoError(t, err)

	// The amount authorized with the collaborator equals the order
	// total, converted to subunits. No silent mismatch.
	assert.Equal(t, authorized, services.SubunitAmount(order.TotalPrice))
}
