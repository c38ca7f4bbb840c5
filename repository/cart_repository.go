package repository

import (
	"encoding/json"

	"github.com/iamkibet/bitedash-app-sub000/entity"
)

const cartKey = "cart.v1"

// CartRepository round-trips the cart blob. Load is fail-soft: a missing or
// malformed blob is just an empty cart, never an error the UI has to show.
type CartRepository interface {
	Load() (*entity.Cart, error)
	Save(c *entity.Cart) error
	Clear() error
}

type StoreCartRepository struct {
	Store *Store
}

func NewCartRepository(store *Store) *StoreCartRepository {
	return &StoreCartRepository{Store: store}
}

func (r *StoreCartRepository) Load() (*entity.Cart, error) {
	raw, ok, err := r.Store.Get(cartKey)
	if err != nil || !ok {
		return &entity.Cart{}, nil
	}
	var c entity.Cart
	if err := json.Unmarshal(raw, &c); err != nil {
		return &entity.Cart{}, nil
	}
	return &c, nil
}

func (r *StoreCartRepository) Save(c *entity.Cart) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return r.Store.Put(cartKey, raw)
}

func (r *StoreCartRepository) Clear() error {
	return r.Store.Delete(cartKey)
}
