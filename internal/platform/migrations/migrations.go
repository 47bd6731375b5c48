package migrations

import (
	"time"

	"gorm.io/gorm"
)

// Run applies the schema for the bounded contexts. Intended to replace adapter-level automigrate.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&categoryRecord{},
		&productRecord{},
		&orderRecord{},
		&orderItemRecord{},
		&userRecord{},
	)
}

// Category schema mirrors the catalog Postgres adapter.
type categoryRecord struct {
	ID          string    `gorm:"primaryKey;column:id;type:varchar(64)"`
	Name        string    `gorm:"column:name;uniqueIndex"`
	Description string    `gorm:"column:description"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (categoryRecord) TableName() string { return "categories" }

// Product schema mirrors the catalog Postgres adapter. Qty carries a
// database-level non-negative check so no write path can drive it below zero.
type productRecord struct {
	ID          string    `gorm:"primaryKey;column:id;type:varchar(64)"`
	Name        string    `gorm:"column:name;index"`
	SKU         string    `gorm:"column:sku;uniqueIndex"`
	Description string    `gorm:"column:description"`
	Price       float64   `gorm:"column:price"`
	Qty         int       `gorm:"column:qty;check:qty >= 0"`
	CategoryID  string    `gorm:"column:category_id;type:varchar(64);index"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (productRecord) TableName() string { return "products" }

// Order schema mirrors the orders Postgres adapter.
type orderRecord struct {
	ID         string    `gorm:"primaryKey;column:id;type:varchar(64)"`
	GrandTotal float64   `gorm:"column:grand_total"`
	CreatedBy  string    `gorm:"column:created_by;type:varchar(64);index:idx_orders_owner_created"`
	Status     string    `gorm:"column:status;type:varchar(32);index"`
	CreatedAt  time.Time `gorm:"column:created_at;index:idx_orders_owner_created,sort:desc"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

// Order item schema mirrors the orders Postgres adapter.
type orderItemRecord struct {
	ID        int64   `gorm:"primaryKey;autoIncrement;column:id"`
	OrderID   string  `gorm:"column:order_id;type:varchar(64);index"`
	ProductID string  `gorm:"column:product_id;type:varchar(64);index"`
	Name      string  `gorm:"column:name"`
	Price     float64 `gorm:"column:price"`
	Quantity  int     `gorm:"column:quantity"`
	Position  int     `gorm:"column:position"`
}

func (orderItemRecord) TableName() string { return "order_items" }

// User schema mirrors the users Postgres adapter.
type userRecord struct {
	ID           string    `gorm:"primaryKey;column:id;type:varchar(64)"`
	FullName     string    `gorm:"column:full_name"`
	Email        string    `gorm:"column:email;uniqueIndex"`
	PasswordHash string    `gorm:"column:password_hash"`
	Roles        string    `gorm:"column:roles"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (userRecord) TableName() string { return "users" }
