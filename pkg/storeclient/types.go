package storeclient

// CartItem is a raw cart line as stored by the server.
type CartItem struct {
	ID        string `json:"_id"`
	ProductID string `json:"productID"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size"`
}

type Product struct {
	ID       string   `json:"_id"`
	Category string   `json:"category"`
	Title    string   `json:"title"`
	Price    float64  `json:"price"`
	Images   []string `json:"images"`
}

type User struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// CartResponse is the getCart payload. The server answers with a message
// instead of items when the user has no cart.
type CartResponse struct {
	Items   []CartItem `json:"items"`
	Message string     `json:"message,omitempty"`
}

// Empty reports whether the server signalled "no cart".
func (r *CartResponse) Empty() bool {
	return r.Message != ""
}

// MutationResponse is returned by addItem, updateQuantity and deleteItem.
type MutationResponse struct {
	Message string     `json:"message"`
	Items   []CartItem `json:"items"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
