package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/belandja/commerce-api/internal/domains/orders/domain"
	"github.com/belandja/commerce-api/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists orders in PostgreSQL using GORM. Order and items are
// written inside one transaction so an order can never be stored with a
// partial item list.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&orderRecord{}, &orderItemRecord{})
	}
	return repo
}

type orderRecord struct {
	ID         string    `gorm:"primaryKey;column:id;type:varchar(64)"`
	GrandTotal float64   `gorm:"column:grand_total"`
	CreatedBy  string    `gorm:"column:created_by;type:varchar(64);index:idx_orders_owner_created"`
	Status     string    `gorm:"column:status;type:varchar(32);index"`
	CreatedAt  time.Time `gorm:"column:created_at;index:idx_orders_owner_created,sort:desc"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

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

// Insert writes the order and all items in one transaction.
func (r *Repository) Insert(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	record := toOrderRecord(order)
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	items := make([]orderItemRecord, 0, len(order.Items))
	for i, item := range order.Items {
		items = append(items, orderItemRecord{
			OrderID:   record.ID,
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
			Position:  i,
		})
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.getByID(ctx, record.ID)
}

// FindByOwner returns one page of the owner's orders, newest first, and the
// total count across pages.
func (r *Repository) FindByOwner(ctx context.Context, ownerID string, page, limit int) ([]*domain.Order, int64, error) {
	if err := r.ensureDB(); err != nil {
		return nil, 0, err
	}
	if page < 1 || limit < 1 {
		return nil, 0, errors.New("page and limit must be positive")
	}
	var total int64
	if err := r.db.WithContext(ctx).Model(&orderRecord{}).
		Where("created_by = ?", ownerID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var records []orderRecord
	if err := r.db.WithContext(ctx).
		Where("created_by = ?", ownerID).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&records).Error; err != nil {
		return nil, 0, err
	}
	orders, err := r.attachItems(ctx, records)
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// Delete removes an order and its items. Compensation path only.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&orderItemRecord{}, "order_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&orderRecord{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ports.ErrOrderNotFound
		}
		return nil
	})
}

func (r *Repository) getByID(ctx context.Context, id string) (*domain.Order, error) {
	var record orderRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrOrderNotFound
		}
		return nil, err
	}
	orders, err := r.attachItems(ctx, []orderRecord{record})
	if err != nil {
		return nil, err
	}
	return orders[0], nil
}

func (r *Repository) attachItems(ctx context.Context, records []orderRecord) ([]*domain.Order, error) {
	orders := make([]*domain.Order, 0, len(records))
	if len(records) == 0 {
		return orders, nil
	}
	ids := make([]string, 0, len(records))
	for _, record := range records {
		ids = append(ids, record.ID)
	}
	var itemRecords []orderItemRecord
	if err := r.db.WithContext(ctx).
		Where("order_id IN ?", ids).
		Order("position").
		Find(&itemRecords).Error; err != nil {
		return nil, err
	}
	itemsByOrder := map[string][]domain.OrderItem{}
	for _, item := range itemRecords {
		itemsByOrder[item.OrderID] = append(itemsByOrder[item.OrderID], domain.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}
	for i := range records {
		orders = append(orders, records[i].toDomain(itemsByOrder[records[i].ID]))
	}
	return orders, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

func toOrderRecord(order *domain.Order) orderRecord {
	return orderRecord{
		ID:         order.ID,
		GrandTotal: order.GrandTotal,
		CreatedBy:  order.CreatedBy,
		Status:     string(order.Status),
	}
}

func (r orderRecord) toDomain(items []domain.OrderItem) *domain.Order {
	return &domain.Order{
		ID:         r.ID,
		GrandTotal: r.GrandTotal,
		Items:      items,
		CreatedBy:  r.CreatedBy,
		Status:     domain.Status(r.Status),
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}
