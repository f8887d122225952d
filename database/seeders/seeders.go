// Package seeders loads development fixtures into the database.
package seeders

import (
	"sort"
	"sync"

	"gorm.io/gorm"
)

// SeederFunc inserts a set of fixture rows. Seeders must be idempotent.
type SeederFunc func(db *gorm.DB) error

var (
	mu       sync.Mutex
	registry = map[string]SeederFunc{}
)

func Register(name string, fn SeederFunc) {
	mu.Lock()
	defer mu.Unlock()
	registry[name] = fn
}

// Run executes every registered seeder in name order.
func Run(db *gorm.DB) error {
	mu.Lock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	mu.Unlock()
	sort.Strings(names)

	for _, name := range names {
		if err := registry[name](db); err != nil {
			return err
		}
	}
	return nil
}
