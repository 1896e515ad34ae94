package handlers

import (
	"errors"
	"net/http"

	"github.com/Dias221467/Storefront/internal/models"
	"github.com/Dias221467/Storefront/internal/services"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

const emptyCartMessage = "Cart is empty"

// CartHandler serves the /cart router.
type CartHandler struct {
	Service *services.CartService
}

func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{Service: service}
}

// GetCartHandler returns {items} or, for a missing or empty cart, {message}.
func (h *CartHandler) GetCartHandler(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userID"]

	cart, err := h.Service.GetCart(r.Context(), userID)
	switch {
	case errors.Is(err, services.ErrCartNotFound):
		writeJSON(w, http.StatusOK, map[string]string{"message": emptyCartMessage})
		return
	case errors.Is(err, services.ErrInvalidID):
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	case err != nil:
		log.WithField("userID", userID).WithError(err).Error("Failed to fetch cart")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if len(cart.Items) == 0 {
		writeJSON(w, http.StatusOK, map[string]string{"message": emptyCartMessage})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"items": cart.Items})
}

func (h *CartHandler) AddItemHandler(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userID"]

	var req models.AddItemRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	cart, err := h.Service.AddItem(r.Context(), userID, req)
	if err != nil {
		h.fail(w, userID, err, "Failed to add item to cart")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Item added to cart",
		"items":   cart.Items,
	})
}

func (h *CartHandler) UpdateQuantityHandler(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userID"]

	var req models.UpdateQuantityRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	cart, err := h.Service.UpdateQuantity(r.Context(), userID, req)
	if err != nil {
		h.fail(w, userID, err, "Failed to update cart item")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Quantity updated",
		"items":   cart.Items,
	})
}

// DeleteItemHandler removes {itemID} from the user's cart.
func (h *CartHandler) DeleteItemHandler(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userID"]

	var req models.DeleteItemRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	cart, err := h.Service.DeleteItem(r.Context(), userID, req.ItemID)
	if err != nil {
		h.fail(w, userID, err, "Failed to delete cart item")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Item deleted",
		"items":   cart.Items,
	})
}

func (h *CartHandler) fail(w http.ResponseWriter, userID string, err error, msg string) {
	switch {
	case errors.Is(err, services.ErrInvalidID),
		errors.Is(err, services.ErrInvalidQuantity),
		errors.Is(err, services.ErrInvalidSize):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrProductNotFound),
		errors.Is(err, services.ErrItemNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		log.WithField("userID", userID).WithError(err).Error(msg)
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
