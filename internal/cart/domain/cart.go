package domain

// ProductSnapshot is the catalog data captured at add-to-cart time. Stock is
// the purchase ceiling known at that moment; display surfaces use it to cap
// the quantity controls.
type ProductSnapshot struct {
	Stock    int32  `json:"stock"`
	Category string `json:"category"`
	ImageURL string `json:"image_url"`
}

type LineItem struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice int64           `json:"unit_price"`
	Quantity  int32           `json:"quantity"`
	ImageURL  string          `json:"image_url"`
	Snapshot  ProductSnapshot `json:"snapshot"`
}

// Cart is a value type. The reducers below never mutate their receiver; they
// return the next cart state, which keeps them testable without a store or
// storage attached.
type Cart struct {
	Items []LineItem `json:"items"`
}

func (c Cart) clone() Cart {
	next := Cart{Items: make([]LineItem, len(c.Items))}
	copy(next.Items, c.Items)
	return next
}

func (c Cart) find(productID string) int {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// Add inserts a new line for the item's product, or increments the existing
// line's quantity. One line per product id. The second return reports whether
// a line already existed.
func Add(c Cart, item LineItem) (Cart, bool) {
	next := c.clone()
	if i := next.find(item.ProductID); i >= 0 {
		next.Items[i].Quantity += item.Quantity
		return next, true
	}
	next.Items = append(next.Items, item)
	return next, false
}

// Remove deletes the line for productID. Removing an absent product is a
// no-op.
func Remove(c Cart, productID string) Cart {
	i := c.find(productID)
	if i < 0 {
		return c
	}
	next := c.clone()
	next.Items = append(next.Items[:i], next.Items[i+1:]...)
	return next
}

// SetQuantity sets the line's quantity directly. A quantity of zero or less
// removes the line; a line never holds quantity < 1.
func SetQuantity(c Cart, productID string, quantity int32) Cart {
	if quantity <= 0 {
		return Remove(c, productID)
	}
	i := c.find(productID)
	if i < 0 {
		return c
	}
	next := c.clone()
	next.Items[i].Quantity = quantity
	return next
}

func Clear(Cart) Cart {
	return Cart{}
}

// ItemCount is the sum of line quantities, recomputed on every call.
func (c Cart) ItemCount() int32 {
	var n int32
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

// Subtotal is the sum of unit price times quantity over all lines, in minor
// currency units.
func (c Cart) Subtotal() int64 {
	var total int64
	for _, it := range c.Items {
		total += it.UnitPrice * int64(it.Quantity)
	}
	return total
}

// Line returns the line for productID, if present.
func (c Cart) Line(productID string) (LineItem, bool) {
	if i := c.find(productID); i >= 0 {
		return c.Items[i], true
	}
	return LineItem{}, false
}
