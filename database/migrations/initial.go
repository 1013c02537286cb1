package migrations

import (
	"gorm.io/gorm"

	"github.com/sedastudio/boutique/pkg/migration"
	"github.com/sedastudio/boutique/pkg/queue"
	"github.com/sedastudio/boutique/pkg/sidestore"
)

func init() {
	migration.Register("20260301000000_create_orders_table", &CreateOrdersTable{})
	migration.Register("20260301000001_create_order_events_table", &CreateOrderEventsTable{})
	migration.Register("20260301000002_create_failed_jobs_table", &CreateFailedJobsTable{})
}

// -------- 0001: orders (durable side-store projection) --------

type CreateOrdersTable struct{}

func (m *CreateOrdersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&sidestore.OrderRow{})
}

func (m *CreateOrdersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("orders")
}

// -------- 0002: order_events (append-only trail) --------

type CreateOrderEventsTable struct{}

func (m *CreateOrderEventsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&sidestore.OrderEventRow{})
}

func (m *CreateOrderEventsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("order_events")
}

// -------- 0003: failed jobs --------

type CreateFailedJobsTable struct{}

func (m *CreateFailedJobsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&queue.FailedJobRecord{})
}

func (m *CreateFailedJobsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("boutique_failed_jobs")
}
