package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/sedastudio/boutique/app/models"
	"github.com/sedastudio/boutique/app/store"
	"github.com/sedastudio/boutique/pkg/httperr"
	"github.com/sedastudio/boutique/pkg/logger"
	"github.com/sedastudio/boutique/pkg/metrics"
	"github.com/sedastudio/boutique/pkg/payment"
)

// DurableStore is the side of the order ledger that must survive a
// process restart. Implemented by pkg/sidestore; stubbed in tests.
type DurableStore interface {
	UpsertOrder(order models.Order) error
	AppendEvent(orderID, status, note string, checkpoint map[string]interface{}, happenedAt time.Time) error
}

// ConfirmationMailer sends the payment-confirmation mail. Fire-and-forget:
// implementations must not block or fail the transition.
type ConfirmationMailer interface {
	SendPaymentConfirmation(user models.User, order models.Order, product models.Product)
}

// InternalNotifier tells the team about a paid order. Fire-and-forget.
type InternalNotifier interface {
	NotifyOrderPaid(orderID, productTitle string, value float64)
}

// OrderService is the order lifecycle orchestrator: it is the only writer
// of order status and the only appender to order history, and it owns the
// reserve/release pairing around payment outcomes.
type OrderService struct {
	orders   *store.Orders
	products *ProductService
	users    *UserService
	gateway  payment.Gateway
	side     DurableStore
	mailer   ConfirmationMailer
	notifier InternalNotifier

	// refreshIndex triggers a best-effort remote index sync. Detached from
	// the request path; failures never reach the caller.
	refreshIndex func()
}

// NewOrderService wires the orchestrator. refreshIndex may be nil.
func NewOrderService(
	orders *store.Orders,
	products *ProductService,
	users *UserService,
	gateway payment.Gateway,
	side DurableStore,
	mailer ConfirmationMailer,
	notifier InternalNotifier,
	refreshIndex func(),
) *OrderService {
	if refreshIndex == nil {
		refreshIndex = func() {}
	}
	return &OrderService{
		orders:       orders,
		products:     products,
		users:        users,
		gateway:      gateway,
		side:         side,
		mailer:       mailer,
		notifier:     notifier,
		refreshIndex: refreshIndex,
	}
}

// CreatedOrder is the result of a successful checkout start.
type CreatedOrder struct {
	Order   models.Order   `json:"order"`
	Product models.Product `json:"product"`
}

// Create starts a checkout:
//
//  1. resolve user and product,
//  2. reserve one unit (before the gateway call, so an abandoned checkout
//     never oversells),
//  3. trigger a best-effort index refresh,
//  4. request a payment preference from the gateway,
//  5. persist the order locally with its first history entry,
//  6. mirror it to the durable store and append the creation event.
//
// If step 6 fails the order is deleted, the unit released and the refresh
// re-triggered before the failure is re-raised. A gateway failure after
// the reservation (step 4) is not compensated here; the provider call
// happens before persistence and the reserved unit leaks until a failed
// webhook or manual intervention releases it.
func (s *OrderService) Create(ctx context.Context, userID, productID, externalUserID string) (CreatedOrder, error) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return CreatedOrder{}, err
	}
	product, err := s.products.Get(productID)
	if err != nil {
		return CreatedOrder{}, err
	}

	if _, err := s.products.Reserve(productID); err != nil {
		return CreatedOrder{}, err
	}
	s.refreshIndex()

	orderID := uuid.NewString()
	pref, err := s.gateway.CreatePreference(ctx, user, product, orderID)
	if err != nil {
		return CreatedOrder{}, err
	}

	now := time.Now().UTC()
	metadata := map[string]interface{}{
		"productTitle":   product.Title,
		"productSku":     product.SKU,
		"productSummary": product.Summary,
	}
	for k, v := range pref.Metadata {
		metadata[k] = v
	}

	order := models.Order{
		ID:               orderID,
		UserID:           userID,
		ProductID:        productID,
		Status:           models.StatusPendingPayment,
		Currency:         product.Currency,
		Total:            product.Price,
		PaymentProvider:  "mercadopago",
		PaymentReference: pref.ID,
		PaymentURL:       pref.RedirectURL,
		Metadata:         metadata,
		History: []models.HistoryEntry{
			{Status: string(models.StatusPendingPayment), Note: "Orden creada y enviada a MercadoPago", At: now},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.orders.Save(order)

	if err := s.persistCreate(order, externalUserID); err != nil {
		s.orders.Delete(order.ID)
		if _, relErr := s.products.Release(productID); relErr != nil {
			logger.Error("orders: compensation release failed", "order_id", order.ID, "error", relErr)
		}
		s.refreshIndex()
		return CreatedOrder{}, err
	}

	metrics.OrdersCreated.Inc()

	// The reservation changed visible stock; refresh again so the index
	// reflects the persisted state.
	updated, _ := s.products.Get(productID)
	return CreatedOrder{Order: order, Product: updated}, nil
}

// Get returns the order or NotFound.
func (s *OrderService) Get(orderID string) (models.Order, error) {
	order, ok := s.orders.Get(orderID)
	if !ok {
		return models.Order{}, httperr.NotFound("Orden no encontrada")
	}
	return order, nil
}

// ListByUser returns the user's orders, newest first.
func (s *OrderService) ListByUser(userID string) []models.Order {
	return s.orders.ListByUser(userID)
}

// UpdateStatus applies a provider callback to the order.
//
// The raw provider status maps through a fixed table (approved → paid,
// rejected → failed, anything else → pending-payment). Identical repeated
// callbacks are idempotent: the order comes back unchanged and no history
// entry is appended. Otherwise the transition commits locally first, then
// mirrors to the durable store (failures there surface as Bad Gateway but
// are not rolled back), then the status side effects run: paid sends the
// confirmation mail and internal notification, failed releases the
// reserved unit and refreshes the index.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID, providerStatus, paymentID string) (models.Order, error) {
	order, err := s.Get(orderID)
	if err != nil {
		return models.Order{}, err
	}

	next := s.gateway.MapStatus(providerStatus)
	if order.Status == next {
		return order, nil
	}

	now := time.Now().UTC()
	order.Status = next
	order.UpdatedAt = now
	if paymentID != "" {
		order.PaymentReference = paymentID
	}
	order = order.AppendHistory(string(next), "Evento: "+providerStatus, now)

	if err := s.orders.Update(order); err != nil {
		return models.Order{}, err
	}

	metrics.OrderTransitions.WithLabelValues(string(next)).Inc()

	if err := s.persistStatusUpdate(order, providerStatus, paymentID); err != nil {
		// Local state is already committed; the durable mirror is behind.
		return models.Order{}, err
	}

	switch next {
	case models.StatusPaid:
		s.handlePaid(order)
	case models.StatusFailed:
		if _, err := s.products.Release(order.ProductID); err != nil {
			logger.Error("orders: release after failed payment", "order_id", order.ID, "error", err)
		}
		s.refreshIndex()
	}

	return order, nil
}

func (s *OrderService) handlePaid(order models.Order) {
	user, err := s.users.GetByID(order.UserID)
	if err != nil {
		logger.Error("orders: paid order with unknown user", "order_id", order.ID, "user_id", order.UserID)
		return
	}
	product, err := s.products.Get(order.ProductID)
	if err != nil {
		logger.Error("orders: paid order with unknown product", "order_id", order.ID, "product_id", order.ProductID)
		return
	}

	s.mailer.SendPaymentConfirmation(user, order, product)
	s.notifier.NotifyOrderPaid(order.ID, product.Title, order.Total)
}

func (s *OrderService) persistCreate(order models.Order, externalUserID string) error {
	if externalUserID == "" {
		return httperr.BadRequest("No encontramos tu identidad externa para registrar la orden")
	}

	durable := order
	durable.UserID = externalUserID
	if err := s.side.UpsertOrder(durable); err != nil {
		return err
	}

	return s.side.AppendEvent(
		order.ID,
		string(models.StatusPendingPayment),
		"Orden creada y enviada a MercadoPago",
		map[string]interface{}{
			"paymentReference": order.PaymentReference,
			"initPoint":        order.PaymentURL,
		},
		order.CreatedAt,
	)
}

func (s *OrderService) persistStatusUpdate(order models.Order, providerStatus, paymentID string) error {
	if err := s.side.UpsertOrder(order); err != nil {
		return err
	}

	return s.side.AppendEvent(
		order.ID,
		string(order.Status),
		"Estado actualizado desde Mercado Pago ("+providerStatus+")",
		map[string]interface{}{
			"providerStatus": providerStatus,
			"paymentId":      paymentID,
		},
		order.UpdatedAt,
	)
}
