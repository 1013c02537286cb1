// Package sidestore mirrors the order ledger into a durable SQL store and
// keeps the append-only order event trail.
//
// The side-store is optional at the configuration level but the order path
// treats it as a hard dependency: creating an order or applying a webhook
// must land in durable storage or fail loudly (create compensates, status
// updates surface a gateway error).
package sidestore

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sedastudio/boutique/app/models"
	"github.com/sedastudio/boutique/pkg/httperr"
)

// OrderRow is the durable projection of an order, upserted by id.
type OrderRow struct {
	ID               string    `gorm:"primaryKey;size:64"`
	UserID           string    `gorm:"size:64;index"`
	ProductID        string    `gorm:"size:64;not null"`
	Status           string    `gorm:"size:32;not null"`
	Currency         string    `gorm:"size:8;not null"`
	Total            float64   `gorm:"not null"`
	PaymentReference string    `gorm:"size:255"`
	PaymentProvider  string    `gorm:"size:64"`
	Metadata         string    `gorm:"type:text"`
	CreatedAt        time.Time `gorm:""`
	UpdatedAt        time.Time `gorm:""`
}

func (OrderRow) TableName() string { return "orders" }

// OrderEventRow is one append-only entry in the order event trail.
type OrderEventRow struct {
	ID         uint      `gorm:"primaryKey;autoIncrement"`
	OrderID    string    `gorm:"size:64;index;not null"`
	Status     string    `gorm:"size:32;not null"`
	Note       string    `gorm:"size:512"`
	Checkpoint string    `gorm:"type:text"`
	HappenedAt time.Time `gorm:"index"`
}

func (OrderEventRow) TableName() string { return "order_events" }

// Store wraps the durable side of the order ledger.
type Store struct {
	db *gorm.DB
}

// New creates a Store. db may be nil when no database is configured; every
// write then fails with a 503 so callers see the missing dependency.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Ready reports whether the durable store is configured.
func (s *Store) Ready() bool { return s != nil && s.db != nil }

// UpsertOrder writes the order projection, idempotent by order id.
func (s *Store) UpsertOrder(order models.Order) error {
	if !s.Ready() {
		return httperr.Unavailable("el registro duradero de órdenes no está configurado")
	}

	row := OrderRow{
		ID:               order.ID,
		UserID:           order.UserID,
		ProductID:        order.ProductID,
		Status:           string(order.Status),
		Currency:         order.Currency,
		Total:            order.Total,
		PaymentReference: order.PaymentReference,
		PaymentProvider:  order.PaymentProvider,
		Metadata:         encodeJSON(order.Metadata),
		CreatedAt:        order.CreatedAt,
		UpdatedAt:        order.UpdatedAt,
	}

	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&row).Error
	if err != nil {
		return httperr.BadGateway("no pudimos registrar la orden en el almacén duradero", err).
			WithMeta(map[string]interface{}{"order_id": order.ID})
	}
	return nil
}

// AppendEvent adds one entry to the order event trail. Events are never
// updated or deleted.
func (s *Store) AppendEvent(orderID, status, note string, checkpoint map[string]interface{}, happenedAt time.Time) error {
	if !s.Ready() {
		return httperr.Unavailable("el registro duradero de órdenes no está configurado")
	}

	row := OrderEventRow{
		OrderID:    orderID,
		Status:     status,
		Note:       note,
		Checkpoint: encodeJSON(checkpoint),
		HappenedAt: happenedAt,
	}

	if err := s.db.Create(&row).Error; err != nil {
		return httperr.BadGateway("no pudimos registrar el evento de la orden", err).
			WithMeta(map[string]interface{}{"order_id": orderID, "status": status})
	}
	return nil
}

// OrdersByUser returns the durable projections for one external user,
// newest first. Backs the order-timeline endpoint, which reads from the
// durable side rather than the in-process ledger.
func (s *Store) OrdersByUser(externalUserID string) ([]OrderRow, error) {
	if !s.Ready() {
		return nil, httperr.Unavailable("el registro duradero de órdenes no está configurado")
	}

	var rows []OrderRow
	err := s.db.Where("user_id = ?", externalUserID).Order("created_at desc").Find(&rows).Error
	if err != nil {
		return nil, httperr.BadGateway("no pudimos recuperar tus pedidos", err)
	}
	return rows, nil
}

// EventsByOrder returns the trail for one order, oldest first.
func (s *Store) EventsByOrder(orderID string) ([]OrderEventRow, error) {
	if !s.Ready() {
		return nil, httperr.Unavailable("el registro duradero de órdenes no está configurado")
	}

	var rows []OrderEventRow
	err := s.db.Where("order_id = ?", orderID).Order("id asc").Find(&rows).Error
	if err != nil {
		return nil, httperr.BadGateway("no pudimos leer los eventos de la orden", err)
	}
	return rows, nil
}

func encodeJSON(v interface{}) string {
	if v == nil {
		return "{}"
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(raw)
}
