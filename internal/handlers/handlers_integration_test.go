package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"solestore/internal/handlers"
	"solestore/internal/middleware"
	"solestore/internal/models"
	"solestore/internal/payments"
	"solestore/internal/repositories"
	"solestore/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testJWTSecret = "test_jwt_secret"

// testEnv bundles everything a test needs to drive the API.
type testEnv struct {
	app      *fiber.App
	db       *gorm.DB
	shoeRepo repositories.ShoeRepository
}

// setupApp wires the full API against an in-memory SQLite database.
// Each call gets its own database so tests stay independent.
func setupApp() (*testEnv, error) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to in-memory database: %w", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Shoe{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Review{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to auto-migrate database: %w", err)
	}

	userRepo := repositories.NewGORMUserRepository(db)
	shoeRepo := repositories.NewGORMShoeRepository(db)
	cartRepo := repositories.NewGORMCartRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)
	reviewRepo := repositories.NewGORMReviewRepository(db)

	gateway := payments.NewStubGateway()
	authService := services.NewAuthService(userRepo, testJWTSecret)
	shoeService := services.NewShoeService(shoeRepo)
	cartService := services.NewCartService(cartRepo, shoeRepo)
	checkoutService := services.NewCheckoutService(cartRepo, shoeRepo, orderRepo, gateway, nil, "inr")
	orderService := services.NewOrderService(orderRepo)
	reviewService := services.NewReviewService(reviewRepo, shoeRepo, orderRepo)
	wishlistService := services.NewWishlistService(userRepo, shoeRepo)
	adminService := services.NewAdminService(orderRepo, userRepo)

	authHandler := handlers.NewAuthHandler(authService)
	shoeHandler := handlers.NewShoeHandler(shoeService)
	cartHandler := handlers.NewCartHandler(cartService)
	paymentHandler := handlers.NewPaymentHandler(checkoutService)
	orderHandler := handlers.NewOrderHandler(checkoutService, orderService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	wishlistHandler := handlers.NewWishlistHandler(wishlistService)
	adminHandler := handlers.NewAdminHandler(adminService, orderService)

	app := fiber.New()
	apiV1 := app.Group("/api/v1")

	authHandler.RegisterRoutes(apiV1)
	shoeHandler.RegisterPublicRoutes(apiV1)
	reviewHandler.RegisterPublicRoutes(apiV1)

	protected := apiV1.Group("", middleware.AuthRequired(authService))
	cartHandler.RegisterRoutes(protected)
	paymentHandler.RegisterRoutes(protected)
	orderHandler.RegisterRoutes(protected)
	reviewHandler.RegisterRoutes(protected)
	wishlistHandler.RegisterRoutes(protected)
	shoeHandler.RegisterAdminRoutes(protected)
	adminHandler.RegisterRoutes(protected)

	return &testEnv{app: app, db: db, shoeRepo: shoeRepo}, nil
}

// TestMain suppresses logging during tests for cleaner output.
func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func (env *testEnv) seedShoe(t *testing.T, name string, price float64, stock int) *models.Shoe {
	t.Helper()
	shoe := &models.Shoe{
		Name:        name,
		Description: "Seeded for testing",
		Price:       price,
		Brand:       "Acme",
		Category:    "sneakers",
		Stock:       stock,
	}
	shoe.SetSizes([]string{"8", "9", "10"})
	assert.NoError(t, env.shoeRepo.Create(shoe))
	return shoe
}

func (env *testEnv) request(t *testing.T, method, path, token string, body interface{}) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		assert.NoError(t, err)
		reader = bytes.NewReader(jsonBody)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := env.app.Test(req, -1)
	assert.NoError(t, err)
	return resp
}

// decodeEnvelope reads the uniform {success, message, data/errors}
// response body.
func decodeEnvelope(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	var envelope map[string]interface{}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return envelope
}

// registerAndLogin creates a user and returns a bearer token.
func (env *testEnv) registerAndLogin(t *testing.T, username, password string) string {
	t.Helper()
	resp := env.request(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": password,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()
	return env.login(t, username, password)
}

func (env *testEnv) login(t *testing.T, username, password string) string {
	t.Helper()
	resp := env.request(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": username,
		"password": password,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	envelope := decodeEnvelope(t, resp)
	token, _ := envelope["data"].(map[string]interface{})["token"].(string)
	assert.NotEmpty(t, token)
	return token
}

func TestAuthRegisterAndLogin(t *testing.T) {
	env, err := setupApp()
	assert.NoError(t, err)

	resp := env.request(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"username": "testuser",
		"email":    "test@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	envelope := decodeEnvelope(t, resp)
	assert.Equal(t, true, envelope["success"])
	// The password hash never leaves the server.
	registered := envelope["data"].(map[string]interface{})
	assert.Empty(t, registered["password"])

	// Duplicate registration conflicts.
	resp = env.request(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"username": "testuser",
		"email":    "other@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	envelope = decodeEnvelope(t, resp)
	assert.Equal(t, false, envelope["success"])

	// Wrong password is rejected.
	resp = env.request(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": "testuser",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	token := env.login(t, "testuser", "password123")
	assert.NotEmpty(t, token)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	env, err := setupApp()
	assert.NoError(t, err)

	for _, path := range []string{"/api/v1/cart/", "/api/v1/orders/history", "/api/v1/wishlist/"} {
		resp := env.request(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
		envelope := decodeEnvelope(t, resp)
		assert.Equal(t, false, envelope["success"])
	}

	// A garbage token is also rejected.
	resp := env.request(t, http.MethodGet, "/api/v1/cart/", "not.a.token", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestShoeCatalogIsPublic(t *testing.T) {
	env, err := setupApp()
	assert.NoError(t, err)
	env.seedShoe(t, "Runner", 2000, 5)
	env.seedShoe(t, "Trail", 3500, 2)

	resp := env.request(t, http.MethodGet, "/api/v1/shoes/", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	envelope := decodeEnvelope(t, resp)
	data := envelope["data"].(map[string]interface{})
	shoes := data["shoes"].([]interface{})
	assert.Len(t, shoes, 2)
	assert.Equal(t, float64(1), data["total_pages"])
	assert.Equal(t, float64(1), data["current_page"])

	// Brand/category filters narrow the listing.
	resp = env.request(t, http.MethodGet, "/api/v1/shoes/?category=sneakers&minPrice=3000", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	envelope = decodeEnvelope(t, resp)
	shoes = envelope["data"].(map[string]interface{})["shoes"].([]interface{})
	assert.Len(t, shoes, 1)
}

func TestCheckoutFlow(t *testing.T) {
	env, err := setupApp()
	assert.NoError(t, err)
	shoe := env.seedShoe(t, "Runner", 2000, 5)
	token := env.registerAndLogin(t, "buyer", "password123")

	// Add two pairs to the cart.
	resp := env.request(t, http.MethodPost, "/api/v1/cart/add", token, map[string]interface{}{
		"shoe_id":  shoe.ID,
		"quantity": 2,
		"size":     "9",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	envelope := decodeEnvelope(t, resp)
	data := envelope["data"].(map[string]interface{})
	assert.Equal(t, 4000.0, data["cart_total_price"])

	// Authorize the payment for the server-computed total.
	resp = env.request(t, http.MethodPost, "/api/v1/payment/create-intent", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	envelope = decodeEnvelope(t, resp)
	clientSecret, _ := envelope["data"].(map[string]interface{})["clientSecret"].(string)
	assert.NotEmpty(t, clientSecret)

	// Confirm the order.
	orderBody := map[string]interface{}{
		"shipping_address": map[string]string{
			"street":      "12 MG Road",
			"city":        "Bengaluru",
			"state":       "Karnataka",
			"postal_code": "560001",
			"country":     "India",
		},
		"payment_method": "Stripe",
		"payment_details": map[string]string{
			"payment_id":     "pi_test_123",
			"payment_status": "completed",
		},
	}
	resp = env.request(t, http.MethodPost, "/api/v1/orders/", token, orderBody)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	envelope = decodeEnvelope(t, resp)
	order := envelope["data"].(map[string]interface{})
	assert.Equal(t, 4000.0, order["total_price"])
	assert.Equal(t, "pending", order["order_status"])
	orderID := order["id"].(string)
	items := order["items"].([]interface{})
	assert.Len(t, items, 1)
	snapshot := items[0].(map[string]interface{})
	assert.Equal(t, "Runner", snapshot["name"])
	assert.Equal(t, 2000.0, snapshot["price"])

	// Stock went down by the purchased quantity.
	resp = env.request(t, http.MethodGet, "/api/v1/shoes/"+shoe.ID, "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	envelope = decodeEnvelope(t, resp)
	assert.Equal(t, 3.0, envelope["data"].(map[string]interface{})["stock"])

	// The cart was emptied by the checkout.
	resp = env.request(t, http.MethodGet, "/api/v1/cart/", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	envelope = decodeEnvelope(t, resp)
	cart := envelope["data"].(map[string]interface{})["cart"].(map[string]interface{})
	cartItems, _ := cart["items"].([]interface{})
	assert.Len(t, cartItems, 0)

	// Replaying the confirmation cannot duplicate the order.
	resp = env.request(t, http.MethodPost, "/api/v1/orders/", token, orderBody)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// History shows exactly the one order.
	resp = env.request(t, http.MethodGet, "/api/v1/orders/history", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	envelope = decodeEnvelope(t, resp)
	history := envelope["data"].([]interface{})
	assert.Len(t, history, 1)
	assert.Equal(t, orderID, history[0].(map[string]interface{})["id"])

	// Another user cannot read this order.
	otherToken := env.registerAndLogin(t, "snoop", "password123")
	resp = env.request(t, http.MethodGet, "/api/v1/orders/"+orderID, otherToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}

func TestCheckoutRejectsIncompletePayment(t *testing.T) {
	env, err := setupApp()
	assert.NoError(t, err)
	shoe := env.seedShoe(t, "Runner", 2000, 5)
	token := env.registerAndLogin(t, "buyer", "password123")

	resp := env.request(t, http.MethodPost, "/api/v1/cart/add", token, map[string]interface{}{
		"shoe_id":  shoe.ID,
		"quantity": 1,
		"size":     "9",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = env.request(t, http.MethodPost, "/api/v1/orders/", token, map[string]interface{}{
		"shipping_address": map[string]string{
			"street":      "12 MG Road",
			"city":        "Bengaluru",
			"state":       "Karnataka",
			"postal_code": "560001",
			"country":     "India",
		},
		"payment_method": "Stripe",
		"payment_details": map[string]string{
			"payment_id":     "pi_test_456",
			"payment_status": "failed",
		},
	})
	assert.Equal(t, http.StatusPaymentRequired, resp.StatusCode)
	envelope := decodeEnvelope(t, resp)
	assert.Equal(t, false, envelope["success"])

	// Nothing was reserved and the cart is intact.
	resp = env.request(t, http.MethodGet, "/api/v1/shoes/"+shoe.ID, "", nil)
	envelope = decodeEnvelope(t, resp)
	assert.Equal(t, 5.0, envelope["data"].(map[string]interface{})["stock"])

	resp = env.request(t, http.MethodGet, "/api/v1/cart/", token, nil)
	envelope = decodeEnvelope(t, resp)
	cart := envelope["data"].(map[string]interface{})["cart"].(map[string]interface{})
	assert.Len(t, cart["items"].([]interface{}), 1)
}

func TestAddToCartInsufficientStock(t *testing.T) {
	env, err := setupApp()
	assert.NoError(t, err)
	shoe := env.seedShoe(t, "Runner", 2000, 2)
	token := env.registerAndLogin(t, "buyer", "password123")

	resp := env.request(t, http.MethodPost, "/api/v1/cart/add", token, map[string]interface{}{
		"shoe_id":  shoe.ID,
		"quantity": 5,
		"size":     "9",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	envelope := decodeEnvelope(t, resp)
	assert.Equal(t, false, envelope["success"])
	assert.Contains(t, envelope["message"], "Only 2 left")
}

func TestWishlistToggle(t *testing.T) {
	env, err := setupApp()
	assert.NoError(t, err)
	shoe := env.seedShoe(t, "Runner", 2000, 5)
	token := env.registerAndLogin(t, "collector", "password123")

	resp := env.request(t, http.MethodPost, "/api/v1/wishlist/toggle/"+shoe.ID, token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	envelope := decodeEnvelope(t, resp)
	assert.Equal(t, true, envelope["data"].(map[string]interface{})["is_wishlisted"])

	resp = env.request(t, http.MethodGet, "/api/v1/wishlist/", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	envelope = decodeEnvelope(t, resp)
	assert.Len(t, envelope["data"].([]interface{}), 1)

	resp = env.request(t, http.MethodPost, "/api/v1/wishlist/toggle/"+shoe.ID, token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	envelope = decodeEnvelope(t, resp)
	assert.Equal(t, false, envelope["data"].(map[string]interface{})["is_wishlisted"])
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	env, err := setupApp()
	assert.NoError(t, err)
	token := env.registerAndLogin(t, "plainuser", "password123")

	// A regular user is forbidden.
	resp := env.request(t, http.MethodGet, "/api/v1/admin/stats", token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = env.request(t, http.MethodPost, "/api/v1/shoes/", token, map[string]interface{}{
		"name":        "Sneaky",
		"description": "Should not be created",
		"price":       100.0,
		"brand":       "Acme",
		"category":    "sneakers",
		"stock":       1,
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	// Promote the user and log in again so the token carries the role.
	err = env.db.Model(&models.User{}).Where("username = ?", "plainuser").
		Update("role", models.RoleAdmin).Error
	assert.NoError(t, err)
	adminToken := env.login(t, "plainuser", "password123")

	resp = env.request(t, http.MethodGet, "/api/v1/admin/stats", adminToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	envelope := decodeEnvelope(t, resp)
	stats := envelope["data"].(map[string]interface{})
	assert.Equal(t, float64(1), stats["total_users"])
	assert.Equal(t, float64(0), stats["total_orders"])
}

func TestAdminOrderStatusAndReviewGate(t *testing.T) {
	env, err := setupApp()
	assert.NoError(t, err)
	shoe := env.seedShoe(t, "Runner", 2000, 5)
	buyerToken := env.registerAndLogin(t, "buyer", "password123")

	// Reviews are gated until a delivered purchase exists.
	resp := env.request(t, http.MethodPost, "/api/v1/reviews/create/"+shoe.ID, buyerToken, map[string]interface{}{
		"rating":  5,
		"comment": "Great shoe",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	// Buy the shoe.
	resp = env.request(t, http.MethodPost, "/api/v1/cart/add", buyerToken, map[string]interface{}{
		"shoe_id":  shoe.ID,
		"quantity": 1,
		"size":     "9",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
	resp = env.request(t, http.MethodPost, "/api/v1/orders/", buyerToken, map[string]interface{}{
		"shipping_address": map[string]string{
			"street":      "12 MG Road",
			"city":        "Bengaluru",
			"state":       "Karnataka",
			"postal_code": "560001",
			"country":     "India",
		},
		"payment_method": "PayPal",
		"payment_details": map[string]string{
			"payment_id":     "pi_test_789",
			"payment_status": "completed",
		},
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	envelope := decodeEnvelope(t, resp)
	orderID := envelope["data"].(map[string]interface{})["id"].(string)

	// Still forbidden while the order is only pending.
	resp = env.request(t, http.MethodPost, "/api/v1/reviews/create/"+shoe.ID, buyerToken, map[string]interface{}{
		"rating":  5,
		"comment": "Great shoe",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	// An admin marks it delivered.
	adminToken := func() string {
		env.registerAndLogin(t, "boss", "password123")
		err := env.db.Model(&models.User{}).Where("username = ?", "boss").
			Update("role", models.RoleAdmin).Error
		assert.NoError(t, err)
		return env.login(t, "boss", "password123")
	}()
	resp = env.request(t, http.MethodPatch, "/api/v1/admin/orders/"+orderID+"/status", adminToken, map[string]string{
		"status": "delivered",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Now the review goes through and the aggregates update.
	resp = env.request(t, http.MethodPost, "/api/v1/reviews/create/"+shoe.ID, buyerToken, map[string]interface{}{
		"rating":  5,
		"comment": "Great shoe",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = env.request(t, http.MethodGet, "/api/v1/shoes/"+shoe.ID, "", nil)
	envelope = decodeEnvelope(t, resp)
	updated := envelope["data"].(map[string]interface{})
	assert.Equal(t, 5.0, updated["average_rating"])
	assert.Equal(t, float64(1), updated["number_of_reviews"])

	// Reviews are publicly readable.
	resp = env.request(t, http.MethodGet, "/api/v1/reviews/shoe/"+shoe.ID, "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	envelope = decodeEnvelope(t, resp)
	assert.Len(t, envelope["data"].([]interface{}), 1)
}
