package repository

import (
	"encoding/json"

	"github.com/iamkibet/bitedash-app-sub000/entity"
)

const locationKey = "delivery_location.v1"

// LocationRepository keeps the last-chosen delivery location so the next
// placement can prefill it. Independent of the cart blob.
type LocationRepository struct {
	Store *Store
}

func NewLocationRepository(store *Store) *LocationRepository {
	return &LocationRepository{Store: store}
}

// Load returns nil when nothing was saved yet.
func (r *LocationRepository) Load() (*entity.DeliveryLocation, error) {
	raw, ok, err := r.Store.Get(locationKey)
	if err != nil || !ok {
		return nil, err
	}
	var loc entity.DeliveryLocation
	if err := json.Unmarshal(raw, &loc); err != nil {
		return nil, nil
	}
	return &loc, nil
}

func (r *LocationRepository) Save(loc *entity.DeliveryLocation) error {
	raw, err := json.Marshal(loc)
	if err != nil {
		return err
	}
	return r.Store.Put(locationKey, raw)
}
