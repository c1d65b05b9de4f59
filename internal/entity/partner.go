package entity

import "github.com/uptrace/bun"

// Restaurant is a store that fulfils orders.
type Restaurant struct {
	bun.BaseModel `bun:"table:restaurants"`

	ID   int64  `bun:",pk,autoincrement"`
	Name string `bun:"name"`
}

// Courier is a delivery person assigned to orders.
type Courier struct {
	bun.BaseModel `bun:"table:couriers"`

	ID   int64  `bun:",pk,autoincrement"`
	Name string `bun:"name"`
}
