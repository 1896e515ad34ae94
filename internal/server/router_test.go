package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Dias221467/Storefront/internal/config"
	"github.com/Dias221467/Storefront/internal/handlers"
	"github.com/Dias221467/Storefront/internal/models"
	"github.com/Dias221467/Storefront/internal/repository/memory"
	"github.com/Dias221467/Storefront/internal/services"
	jwtutil "github.com/Dias221467/Storefront/pkg/jwt"
	"github.com/Dias221467/Storefront/pkg/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const allowedOrigin = "https://shop.example.com"

type fixture struct {
	handler http.Handler
	store   *memory.Store
	cfg     *config.Config
	shirt   models.Product
	userID  string
	token   string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	shirt := models.Product{ID: primitive.NewObjectID(), Category: "shirts", Title: "Oxford", Price: 10, Sizes: []string{"M", "L"}}
	store := memory.New(memory.WithProducts(shirt))
	cfg := &config.Config{
		JWTSecret:      "test-secret",
		TokenExpiry:    time.Hour,
		AllowedOrigins: []string{allowedOrigin},
		AssetsDir:      t.TempDir(),
	}

	userService := services.NewUserService(store)
	user, err := userService.Signup(context.Background(), models.SignupRequest{Name: "Ada", Email: "ada@example.com", Password: "hunter22"})
	require.NoError(t, err)
	token, err := jwtutil.GenerateToken(user.ID.Hex(), user.Email, user.Role, cfg.JWTSecret, cfg.TokenExpiry)
	require.NoError(t, err)

	h := Handlers{
		User:    handlers.NewUserHandler(userService, cfg, middleware.NewCookieSigner(cfg.JWTSecret)),
		Product: handlers.NewProductHandler(services.NewProductService(store), cfg.AssetsDir),
		Cart:    handlers.NewCartHandler(services.NewCartService(store, store)),
	}

	return &fixture{
		handler: NewRouter(cfg, h),
		store:   store,
		cfg:     cfg,
		shirt:   shirt,
		userID:  user.ID.Hex(),
		token:   token,
	}
}

func (f *fixture) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", f.token)
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestRootRespondsOK(t *testing.T) {
	f := newFixture(t)
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestGetCartWithoutCartReturnsMessage(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/cart/getCart/"+f.userID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]interface{}{"message": "Cart is empty"}, decode(t, rec))
}

func TestAddFetchDeleteCartItem(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/cart/addItem/"+f.userID, map[string]interface{}{
		"productID": f.shirt.ID.Hex(), "quantity": 2, "size": "M",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = f.do(t, http.MethodGet, "/cart/getCart/"+f.userID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var cart struct {
		Items []struct {
			ID        string `json:"_id"`
			ProductID string `json:"productID"`
			Quantity  int    `json:"quantity"`
			Size      string `json:"size"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cart))
	require.Len(t, cart.Items, 1)
	assert.Equal(t, f.shirt.ID.Hex(), cart.Items[0].ProductID)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, "M", cart.Items[0].Size)

	rec = f.do(t, http.MethodPatch, "/cart/deleteItem/"+f.userID, map[string]string{"itemID": cart.Items[0].ID})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Item deleted", decode(t, rec)["message"])

	rec = f.do(t, http.MethodGet, "/cart/getCart/"+f.userID, nil)
	assert.Equal(t, "Cart is empty", decode(t, rec)["message"])
}

func TestDeleteItemAcceptsURLEncodedBody(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodPost, "/cart/addItem/"+f.userID, map[string]interface{}{
		"productID": f.shirt.ID.Hex(), "quantity": 1, "size": "L",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	cart, err := f.store.GetCartByUser(context.Background(), mustObjectID(t, f.userID))
	require.NoError(t, err)

	form := url.Values{"itemID": {cart.Items[0].ID.Hex()}}
	req := httptest.NewRequest(http.MethodPatch, "/cart/deleteItem/"+f.userID, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", f.token)
	rec = httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	cart, err = f.store.GetCartByUser(context.Background(), mustObjectID(t, f.userID))
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestDeleteItemWithoutCartIsJSONError(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPatch, "/cart/deleteItem/"+f.userID, map[string]string{"itemID": primitive.NewObjectID().Hex()})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, services.ErrCartNotFound.Error(), decode(t, rec)["error"])
}

func TestCartRoutesAreScopedToCaller(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/cart/getCart/"+primitive.NewObjectID().Hex(), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/cart/getCart/"+f.userID, nil)
	rec = httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCORSAllowList(t *testing.T) {
	f := newFixture(t)

	preflight := func(origin string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodOptions, "/cart/deleteItem/"+f.userID, nil)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
		req.Header.Set("Access-Control-Request-Headers", "Authorization, Content-Type")
		rec := httptest.NewRecorder()
		f.handler.ServeHTTP(rec, req)
		return rec
	}

	rec := preflight(allowedOrigin)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, allowedOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))

	rec = preflight("https://evil.example.com")
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestLoginSetsSignedCookieUsableForCart(t *testing.T) {
	f := newFixture(t)

	body := strings.NewReader(`{"email":"ada@example.com","password":"hunter22"}`)
	req := httptest.NewRequest(http.MethodPost, "/user/login", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, decode(t, rec)["token"])

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)

	req = httptest.NewRequest(http.MethodGet, "/cart/getCart/"+f.userID, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec = httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestProductsAndStaticAssets(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.WriteFile(filepath.Join(f.cfg.AssetsDir, "oxford.png"), []byte("png-bytes"), 0o644))

	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/product/ProductAssets/oxford.png", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "png-bytes", rec.Body.String())

	rec = httptest.NewRecorder()
	f.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/product/getProducts?category=shirts", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var products []models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
	require.Len(t, products, 1)
	assert.Equal(t, "Oxford", products[0].Title)

	rec = f.do(t, http.MethodPost, "/product/addProduct", map[string]interface{}{"title": "Tee", "category": "shirts", "price": 5})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func mustObjectID(t *testing.T, hex string) primitive.ObjectID {
	t.Helper()
	id, err := primitive.ObjectIDFromHex(hex)
	require.NoError(t, err)
	return id
}
