package repository

import (
	"encoding/json"

	"github.com/iamkibet/bitedash-app-sub000/entity"
)

// MemoryCartRepository keeps the cart blob in memory. Used by tests and as
// the fallback when the local database cannot be opened.
type MemoryCartRepository struct {
	raw []byte
}

func NewMemoryCartRepository() *MemoryCartRepository { return &MemoryCartRepository{} }

func (r *MemoryCartRepository) Load() (*entity.Cart, error) {
	if r.raw == nil {
		return &entity.Cart{}, nil
	}
	var c entity.Cart
	if err := json.Unmarshal(r.raw, &c); err != nil {
		return &entity.Cart{}, nil
	}
	return &c, nil
}

func (r *MemoryCartRepository) Save(c *entity.Cart) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return err
	}
	r.raw = raw
	return nil
}

func (r *MemoryCartRepository) Clear() error {
	r.raw = nil
	return nil
}
