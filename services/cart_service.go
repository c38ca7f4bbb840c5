package services

import (
	"errors"
	"log"

	"github.com/shopspring/decimal"

	"github.com/iamkibet/bitedash-app-sub000/entity"
	"github.com/iamkibet/bitedash-app-sub000/repository"
)

const (
	MinQty = 1
	MaxQty = 50
)

var ErrItemUnavailable = errors.New("menu item is unavailable")

// CartService owns the one process-wide cart. All mutations flow through it,
// and every mutation is followed by a fail-soft save: if the device store
// write fails the in-memory cart stays correct and the failure is only logged.
type CartService struct {
	Repo repository.CartRepository
	cart *entity.Cart
}

func NewCartService(repo repository.CartRepository) *CartService {
	c, err := repo.Load()
	if err != nil || c == nil {
		c = &entity.Cart{}
	}
	return &CartService{Repo: repo, cart: c}
}

func (s *CartService) Cart() *entity.Cart { return s.cart }

// AddItem puts m in the cart. A cart only ever holds one restaurant: adding
// from a different restaurant throws away the old cart and starts a fresh
// one with this single line.
func (s *CartService) AddItem(m entity.MenuItem, qty int) error {
	if !m.IsAvailable {
		return ErrItemUnavailable
	}
	qty = clampQty(qty)

	if !s.cart.Empty() && s.cart.RestaurantID != m.RestaurantID {
		s.cart.Items = nil
	}
	s.cart.RestaurantID = m.RestaurantID

	if line := s.cart.Find(m.ID); line != nil {
		line.Quantity = clampQty(line.Quantity + qty)
	} else {
		s.cart.Items = append(s.cart.Items, entity.CartItem{MenuItem: m, Quantity: qty})
	}

	s.persist()
	return nil
}

func (s *CartService) RemoveItem(menuItemID uint) {
	items := s.cart.Items[:0]
	for _, it := range s.cart.Items {
		if it.MenuItem.ID != menuItemID {
			items = append(items, it)
		}
	}
	s.cart.Items = items
	if s.cart.Empty() {
		s.cart.RestaurantID = 0
	}
	s.persist()
}

// UpdateQuantity sets the line to qty; zero or less removes the line.
func (s *CartService) UpdateQuantity(menuItemID uint, qty int) {
	if qty <= 0 {
		s.RemoveItem(menuItemID)
		return
	}
	if line := s.cart.Find(menuItemID); line != nil {
		line.Quantity = clampQty(qty)
		s.persist()
	}
}

// Clear empties the cart and erases the persisted blob.
func (s *CartService) Clear() {
	s.cart.Items = nil
	s.cart.RestaurantID = 0
	if err := s.Repo.Clear(); err != nil {
		log.Printf("cart: clear blob failed: %v", err)
	}
}

func (s *CartService) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, it := range s.cart.Items {
		sum = sum.Add(it.MenuItem.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return sum
}

func (s *CartService) ItemCount() int {
	n := 0
	for _, it := range s.cart.Items {
		n += it.Quantity
	}
	return n
}

func (s *CartService) persist() {
	if err := s.Repo.Save(s.cart); err != nil {
		log.Printf("cart: persist failed: %v", err)
	}
}

func clampQty(q int) int {
	if q < MinQty {
		return MinQty
	}
	if q > MaxQty {
		return MaxQty
	}
	return q
}
