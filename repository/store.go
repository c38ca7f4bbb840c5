// Package repository is the device-local store: a small sqlite key/value
// table standing in for the platform's preferences storage, plus typed
// repositories for the blobs the app keeps (cart, delivery location, token).
package repository

import (
	"errors"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

type blob struct {
	Key   string `gorm:"primaryKey;size:64"`
	Value []byte
}

type Store struct {
	DB *gorm.DB
}

func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&blob{}); err != nil {
		return nil, err
	}
	return &Store{DB: db}, nil
}

func (s *Store) Get(key string) ([]byte, bool, error) {
	var b blob
	err := s.DB.First(&b, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b.Value, true, nil
}

func (s *Store) Put(key string, value []byte) error {
	return s.DB.Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&blob{Key: key, Value: value}).Error
}

func (s *Store) Delete(key string) error {
	return s.DB.Delete(&blob{}, "key = ?", key).Error
}
