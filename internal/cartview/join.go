package cartview

import (
	"errors"
	"fmt"

	"github.com/Dias221467/Storefront/pkg/storeclient"
)

// ErrProductNotFound marks a cart line whose product is absent from the catalog.
var ErrProductNotFound = errors.New("product not found in catalog")

// DisplayCartItem is a cart line merged with its product. It is derived and
// never persisted.
type DisplayCartItem struct {
	ID        string
	ProductID string
	Category  string
	Quantity  int
	Size      string
	Title     string
	Price     float64
	Images    []string
}

// JoinResult is the outcome of resolving one raw cart line.
type JoinResult struct {
	Raw      storeclient.CartItem
	Item     DisplayCartItem
	NotFound bool
}

// Err returns a wrapped ErrProductNotFound for unresolved lines.
func (r JoinResult) Err() error {
	if !r.NotFound {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrProductNotFound, r.Raw.ProductID)
}

// Join resolves every raw item against the catalog, preserving input order.
// The result has exactly one entry per raw item.
func Join(items []storeclient.CartItem, catalog []storeclient.Product) []JoinResult {
	byID := make(map[string]storeclient.Product, len(catalog))
	for _, p := range catalog {
		if _, dup := byID[p.ID]; !dup {
			byID[p.ID] = p
		}
	}

	results := make([]JoinResult, len(items))
	for i, raw := range items {
		product, ok := byID[raw.ProductID]
		if !ok {
			results[i] = JoinResult{Raw: raw, NotFound: true}
			continue
		}
		results[i] = JoinResult{
			Raw: raw,
			Item: DisplayCartItem{
				ID:        raw.ID,
				ProductID: raw.ProductID,
				Category:  product.Category,
				Quantity:  raw.Quantity,
				Size:      raw.Size,
				Title:     product.Title,
				Price:     product.Price,
				Images:    product.Images,
			},
		}
	}
	return results
}

// Resolved splits join results into display items and unresolved raw lines.
func Resolved(results []JoinResult) ([]DisplayCartItem, []storeclient.CartItem) {
	items := make([]DisplayCartItem, 0, len(results))
	var missing []storeclient.CartItem
	for _, r := range results {
		if r.NotFound {
			missing = append(missing, r.Raw)
			continue
		}
		items = append(items, r.Item)
	}
	return items, missing
}

// Total is the sum of price times quantity.
func Total(items []DisplayCartItem) float64 {
	var total float64
	for _, it := range items {
		total += it.Price * float64(it.Quantity)
	}
	return total
}
