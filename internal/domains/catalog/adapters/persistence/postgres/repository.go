package postgres

import (
	"context"
	"errors"
	"sort"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/belandja/commerce-api/internal/domains/catalog/domain"
	"github.com/belandja/commerce-api/internal/domains/catalog/ports"
)

var (
	_ ports.Repository = (*Repository)(nil)
	_ ports.Inventory  = (*Repository)(nil)
)

// Repository persists the catalog in PostgreSQL using GORM. Stock
// reservations are conditional single-statement decrements, so two
// concurrent orders for the same product serialize on the row and can
// never drive qty negative.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&categoryRecord{}, &productRecord{})
	}
	return repo
}

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

type categoryRecord struct {
	ID          string    `gorm:"primaryKey;column:id;type:varchar(64)"`
	Name        string    `gorm:"column:name;uniqueIndex"`
	Description string    `gorm:"column:description"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (categoryRecord) TableName() string { return "categories" }

// SaveProduct inserts or updates a product.
func (r *Repository) SaveProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if product == nil {
		return nil, errors.New("product is nil")
	}
	record := toProductRecord(product)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"name":        record.Name,
				"sku":         record.SKU,
				"description": record.Description,
				"price":       record.Price,
				"qty":         record.Qty,
				"category_id": record.CategoryID,
				"updated_at":  gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetProduct(ctx, record.ID)
}

// GetProduct fetches a product by identifier.
func (r *Repository) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record productRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrProductNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// ListProducts returns the full catalog ordered by name.
func (r *Repository) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []productRecord
	if err := r.db.WithContext(ctx).Order("name").Find(&records).Error; err != nil {
		return nil, err
	}
	products := make([]*domain.Product, 0, len(records))
	for i := range records {
		products = append(products, records[i].toDomain())
	}
	return products, nil
}

// DeleteProduct removes a product by identifier.
func (r *Repository) DeleteProduct(ctx context.Context, id string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&productRecord{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrProductNotFound
	}
	return nil
}

// SaveCategory inserts or updates a category.
func (r *Repository) SaveCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if category == nil {
		return nil, errors.New("category is nil")
	}
	record := categoryRecord{ID: category.ID, Name: category.Name, Description: category.Description}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"name":        record.Name,
				"description": record.Description,
				"updated_at":  gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetCategory(ctx, record.ID)
}

// GetCategory fetches a category by identifier.
func (r *Repository) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record categoryRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrCategoryNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// ListCategories returns all categories ordered by name.
func (r *Repository) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []categoryRecord
	if err := r.db.WithContext(ctx).Order("name").Find(&records).Error; err != nil {
		return nil, err
	}
	categories := make([]*domain.Category, 0, len(records))
	for i := range records {
		categories = append(categories, records[i].toDomain())
	}
	return categories, nil
}

// DeleteCategory removes a category by identifier.
func (r *Repository) DeleteCategory(ctx context.Context, id string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&categoryRecord{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrCategoryNotFound
	}
	return nil
}

// GetAvailable returns the product with its live stock quantity.
func (r *Repository) GetAvailable(ctx context.Context, productID string) (*domain.Product, error) {
	return r.GetProduct(ctx, productID)
}

// Reserve decrements stock with a conditional single-statement update.
// The WHERE qty >= ? guard makes check and decrement one atomic unit.
func (r *Repository) Reserve(ctx context.Context, productID string, quantity int) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	if quantity <= 0 {
		return ports.ErrInsufficientStock
	}
	return r.reserveTx(r.db.WithContext(ctx), productID, quantity)
}

// ReserveAll reserves every line inside one transaction; any shortfall
// rolls the whole batch back.
func (r *Repository) ReserveAll(ctx context.Context, items []ports.Reservation) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, item := range lockOrder(items) {
			if err := r.reserveTx(tx, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
}

// Release returns previously reserved units to stock.
func (r *Repository) Release(ctx context.Context, items []ports.Reservation) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, item := range lockOrder(items) {
			result := tx.Model(&productRecord{}).
				Where("id = ?", item.ProductID).
				UpdateColumns(map[string]any{
					"qty":        gorm.Expr("qty + ?", item.Quantity),
					"updated_at": gorm.Expr("NOW()"),
				})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return ports.ErrProductNotFound
			}
		}
		return nil
	})
}

// lockOrder copies the batch sorted by product id. Both reservation and
// release take their row locks in this one global order, so two
// concurrent batches touching the same products cannot deadlock.
func lockOrder(items []ports.Reservation) []ports.Reservation {
	sorted := append([]ports.Reservation(nil), items...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ProductID < sorted[j].ProductID })
	return sorted
}

func (r *Repository) reserveTx(tx *gorm.DB, productID string, quantity int) error {
	result := tx.Model(&productRecord{}).
		Where("id = ? AND qty >= ?", productID, quantity).
		UpdateColumns(map[string]any{
			"qty":        gorm.Expr("qty - ?", quantity),
			"updated_at": gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var exists int64
		if err := tx.Model(&productRecord{}).Where("id = ?", productID).Count(&exists).Error; err != nil {
			return err
		}
		if exists == 0 {
			return ports.ErrProductNotFound
		}
		return ports.ErrInsufficientStock
	}
	return nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres catalog repository not configured")
	}
	return nil
}

func toProductRecord(product *domain.Product) productRecord {
	return productRecord{
		ID:          product.ID,
		Name:        product.Name,
		SKU:         product.SKU,
		Description: product.Description,
		Price:       product.Price,
		Qty:         product.Qty,
		CategoryID:  product.CategoryID,
	}
}

func (r productRecord) toDomain() *domain.Product {
	return &domain.Product{
		ID:          r.ID,
		Name:        r.Name,
		SKU:         r.SKU,
		Description: r.Description,
		Price:       r.Price,
		Qty:         r.Qty,
		CategoryID:  r.CategoryID,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func (r categoryRecord) toDomain() *domain.Category {
	return &domain.Category{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
