// Package cartview drives the cart page: it fetches the user's cart, joins it
// against the catalog, keeps the total in step with the checkout page and runs
// the confirm-then-delete flow.
package cartview

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/Dias221467/Storefront/pkg/storeclient"
	"github.com/sirupsen/logrus"
)

const (
	// CheckoutPath is where ContinueToCheckout navigates.
	CheckoutPath = "/cart/checkout"

	deletedNotice   = "Item successfully Deleted"
	transportNotice = "Could not reach the store. Please try again."
)

var (
	ErrNotReady         = errors.New("cartview: session or catalog not loaded")
	ErrNoPendingDelete  = errors.New("cartview: no delete awaiting confirmation")
	ErrDeleteInProgress = errors.New("cartview: a delete is already in progress")
)

// CartAPI is the part of the storefront API the cart page uses.
type CartAPI interface {
	GetCart(ctx context.Context, token, userID string) (*storeclient.CartResponse, error)
	DeleteItem(ctx context.Context, token, userID, itemID string) (*storeclient.MutationResponse, error)
}

// Notifier shows feedback to the user.
type Notifier interface {
	// Notice shows a dismissable confirmation.
	Notice(msg string)
	// Alert shows a blocking error message.
	Alert(msg string)
	// RetryableError reports a failure the user may retry.
	RetryableError(msg string, err error)
}

type Navigator interface {
	Navigate(path string)
}

// Session is the signed-in user. The controller only reads it.
type Session struct {
	Token string
	User  *storeclient.User
}

func (s Session) valid() bool {
	return s.Token != "" && s.User != nil && s.User.ID != ""
}

// DeleteState is the position of the delete flow.
type DeleteState int

const (
	Idle DeleteState = iota
	ConfirmPending
	Deleting
)

func (s DeleteState) String() string {
	switch s {
	case Idle:
		return "idle"
	case ConfirmPending:
		return "confirm_pending"
	case Deleting:
		return "deleting"
	default:
		return "unknown"
	}
}

// Deps are the collaborators injected into a Controller.
type Deps struct {
	Session  Session
	Catalog  []storeclient.Product
	Checkout Checkout
	Notifier Notifier
}

// Controller owns the local cart state. Only the controller mutates it.
type Controller struct {
	api      CartAPI
	checkout Checkout
	notifier Notifier

	mu         sync.Mutex
	session    Session
	catalog    []storeclient.Product
	raw        []storeclient.CartItem
	cart       []DisplayCartItem
	unresolved []storeclient.CartItem
	version    uint64

	totalVersion uint64
	total        float64
	pushed       bool
	pushedTotal  float64

	state          DeleteState
	pendingID      string
	successVisible bool
}

func NewController(api CartAPI, deps Deps) *Controller {
	c := &Controller{
		api:      api,
		checkout: deps.Checkout,
		notifier: deps.Notifier,
		session:  deps.Session,
		catalog:  deps.Catalog,
	}
	c.mu.Lock()
	c.syncTotalLocked()
	c.mu.Unlock()
	return c
}

// SetSession replaces the signed-in user.
func (c *Controller) SetSession(s Session) {
	c.mu.Lock()
	c.session = s
	c.mu.Unlock()
}

// SetCatalog replaces the catalog snapshot and re-joins the current cart.
func (c *Controller) SetCatalog(catalog []storeclient.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.catalog = catalog
	if c.raw != nil {
		c.applyRawLocked(c.raw)
	}
}

// Ready reports whether token, user and catalog are all present.
func (c *Controller) Ready() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.readyLocked()
}

func (c *Controller) readyLocked() bool {
	return c.session.valid() && c.catalog != nil
}

// FetchCart loads the user's cart and replaces the local state. A "no cart"
// answer leaves the cart empty. On failure the state is unchanged.
func (c *Controller) FetchCart(ctx context.Context) error {
	c.mu.Lock()
	if !c.readyLocked() {
		c.mu.Unlock()
		return ErrNotReady
	}
	session := c.session
	c.mu.Unlock()

	resp, err := c.api.GetCart(ctx, session.Token, session.User.ID)
	if err != nil {
		c.report("getCart", err)
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if resp.Empty() {
		c.applyRawLocked([]storeclient.CartItem{})
		return nil
	}
	c.applyRawLocked(resp.Items)
	return nil
}

func (c *Controller) applyRawLocked(raw []storeclient.CartItem) {
	results := Join(raw, c.catalog)
	items, missing := Resolved(results)
	for _, m := range missing {
		logrus.WithFields(logrus.Fields{
			"itemID":    m.ID,
			"productID": m.ProductID,
		}).Warn("Cart item references a product missing from the catalog")
	}

	c.raw = raw
	c.unresolved = missing
	c.setCartLocked(items)
}

// setCartLocked replaces the cart value. Every replacement is a new version,
// which is what the total is memoized on.
func (c *Controller) setCartLocked(items []DisplayCartItem) {
	c.cart = items
	c.version++
	c.syncTotalLocked()
}

func (c *Controller) syncTotalLocked() {
	if c.totalVersion != c.version || c.version == 0 {
		c.total = Total(c.cart)
		c.totalVersion = c.version
	}
	if c.checkout != nil && (!c.pushed || c.pushedTotal != c.total) {
		c.checkout.SetTotalBill(c.total)
		c.pushed = true
		c.pushedTotal = c.total
	}
}

// Cart returns a copy of the displayed cart lines.
func (c *Controller) Cart() []DisplayCartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]DisplayCartItem(nil), c.cart...)
}

// Unresolved returns the raw lines left out because their product is missing.
func (c *Controller) Unresolved() []storeclient.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]storeclient.CartItem(nil), c.unresolved...)
}

// Total returns the cart total, recomputed only when the cart was replaced.
func (c *Controller) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.syncTotalLocked()
	return c.total
}

// RequestDelete opens the confirmation step for itemID. Asking again while a
// confirmation is open retargets it.
func (c *Controller) RequestDelete(itemID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == Deleting {
		return ErrDeleteInProgress
	}
	c.state = ConfirmPending
	c.pendingID = itemID
	return nil
}

// Cancel closes the confirmation step without deleting.
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == ConfirmPending {
		c.state = Idle
		c.pendingID = ""
	}
}

// State returns the delete flow position.
func (c *Controller) State() DeleteState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// PendingDelete returns the item awaiting confirmation, if any.
func (c *Controller) PendingDelete() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == Idle {
		return "", false
	}
	return c.pendingID, true
}

// SuccessVisible reports whether the "deleted" confirmation is showing.
func (c *Controller) SuccessVisible() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.successVisible
}

func (c *Controller) DismissSuccess() {
	c.mu.Lock()
	c.successVisible = false
	c.mu.Unlock()
}

// Confirm performs the pending delete. On success the line is removed from
// the local cart by identity. On any failure the cart is left unchanged and
// the error is returned after the user has been notified.
func (c *Controller) Confirm(ctx context.Context) error {
	c.mu.Lock()
	if c.state != ConfirmPending {
		c.mu.Unlock()
		return ErrNoPendingDelete
	}
	if !c.session.valid() {
		c.mu.Unlock()
		return ErrNotReady
	}
	itemID := c.pendingID
	session := c.session
	c.state = Deleting
	c.mu.Unlock()

	_, err := c.api.DeleteItem(ctx, session.Token, session.User.ID, itemID)

	c.mu.Lock()
	c.state = Idle
	c.pendingID = ""
	if err == nil {
		c.removeLocked(itemID)
		c.successVisible = true
	}
	c.mu.Unlock()

	if err != nil {
		c.report("deleteItem", err)
		return err
	}

	logrus.WithField("itemID", itemID).Info("Cart item deleted")
	if c.notifier != nil {
		c.notifier.Notice(deletedNotice)
	}
	return nil
}

func (c *Controller) removeLocked(itemID string) {
	kept := make([]DisplayCartItem, 0, len(c.cart))
	for _, it := range c.cart {
		if it.ID != itemID {
			kept = append(kept, it)
		}
	}
	raw := make([]storeclient.CartItem, 0, len(c.raw))
	for _, it := range c.raw {
		if it.ID != itemID {
			raw = append(raw, it)
		}
	}
	c.raw = raw
	c.setCartLocked(kept)
}

func (c *Controller) report(op string, err error) {
	var apiErr *storeclient.APIError
	if errors.As(err, &apiErr) {
		logrus.WithFields(logrus.Fields{
			"op":     op,
			"status": apiErr.StatusCode,
		}).Warn(apiErr.Message)
		if c.notifier != nil {
			msg := apiErr.Message
			if msg == "" {
				msg = http.StatusText(apiErr.StatusCode)
			}
			c.notifier.Alert(msg)
		}
		return
	}

	logrus.WithField("op", op).WithError(err).Warn("Cart request failed")
	if c.notifier != nil {
		c.notifier.RetryableError(transportNotice, err)
	}
}

// ContinueToCheckout navigates to the checkout page iff the cart is non-empty.
func (c *Controller) ContinueToCheckout(nav Navigator) bool {
	c.mu.Lock()
	empty := len(c.cart) == 0
	c.mu.Unlock()

	if empty {
		return false
	}
	nav.Navigate(CheckoutPath)
	return true
}
