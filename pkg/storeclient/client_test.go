package storeclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCartSendsTokenAndDecodesItems(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/cart/getCart/u1", r.URL.Path)
		assert.Equal(t, "tok", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"items":[{"_id":"a","productID":"p1","quantity":2,"size":"M"}]}`))
	}))
	defer srv.Close()

	c, err := New(srv.URL)
	require.NoError(t, err)

	cart, err := c.GetCart(context.Background(), "tok", "u1")
	require.NoError(t, err)
	assert.False(t, cart.Empty())
	assert.Equal(t, []CartItem{{ID: "a", ProductID: "p1", Quantity: 2, Size: "M"}}, cart.Items)
}

func TestGetCartMessagePayloadIsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message":"Cart is empty"}`))
	}))
	defer srv.Close()

	c, err := New(srv.URL + "/")
	require.NoError(t, err)

	cart, err := c.GetCart(context.Background(), "tok", "u1")
	require.NoError(t, err)
	assert.True(t, cart.Empty())
	assert.Empty(t, cart.Items)
}

func TestDeleteItemSendsPatchBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/cart/deleteItem/u1", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "a", body["itemID"])
		w.Write([]byte(`{"message":"Item deleted","items":[]}`))
	}))
	defer srv.Close()

	c, err := New(srv.URL)
	require.NoError(t, err)

	resp, err := c.DeleteItem(context.Background(), "tok", "u1", "a")
	require.NoError(t, err)
	assert.Equal(t, "Item deleted", resp.Message)
}

func TestServerErrorBecomesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"server error"}`))
	}))
	defer srv.Close()

	c, err := New(srv.URL)
	require.NoError(t, err)

	_, err = c.DeleteItem(context.Background(), "tok", "u1", "a")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.True(t, apiErr.ServerFailure())
	assert.Equal(t, "server error", apiErr.Message)
}

func TestPlainTextErrorMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
	}))
	defer srv.Close()

	c, err := New(srv.URL)
	require.NoError(t, err)

	_, err = c.GetCart(context.Background(), "", "u1")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Unauthorized", apiErr.Message)
}

func TestUnreachableServerIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := srv.URL
	srv.Close()

	c, err := New(addr)
	require.NoError(t, err)

	_, err = c.GetCart(context.Background(), "tok", "u1")
	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.Equal(t, "getCart", transportErr.Op)
}

func TestNewRequiresBaseURL(t *testing.T) {
	_, err := New("  ")
	assert.Error(t, err)
}

func TestNewFromEnv(t *testing.T) {
	t.Setenv("VITE_URL", "")
	t.Setenv("API_URL", "")
	_, err := NewFromEnv()
	assert.Error(t, err)

	t.Setenv("API_URL", "http://localhost:3001")
	c, err := NewFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "localhost:3001", c.baseURL.Host)
}
