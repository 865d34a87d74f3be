package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/isaac-evs/catalog-service/internal/domain"
	pkgkafka "github.com/isaac-evs/catalog-service/pkg/kafka"
)

// Kafka topic constants for catalog domain events.
const (
	TopicCustomerCreated = "catalog.customer.created"
	TopicCustomerUpdated = "catalog.customer.updated"
	TopicCustomerDeleted = "catalog.customer.deleted"
	TopicProductCreated  = "catalog.product.created"
	TopicProductUpdated  = "catalog.product.updated"
	TopicProductDeleted  = "catalog.product.deleted"
)

// Aggregate type constants.
const (
	AggregateTypeCustomer = "customer"
	AggregateTypeProduct  = "product"
)

// Source identifier for events originating from the catalog service.
const SourceCatalogService = "catalog-service"

// CustomerEventData is the payload for customer lifecycle events.
type CustomerEventData struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	IsActive bool   `json:"is_active"`
}

// ProductEventData is the payload for product lifecycle events.
type ProductEventData struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	SKU            string  `json:"sku"`
	Price          float64 `json:"price"`
	InventoryCount int     `json:"inventory_count"`
	IsActive       bool    `json:"is_active"`
}

// DeletedEventData is the payload for deletion events.
type DeletedEventData struct {
	ID string `json:"id"`
}

// Producer publishes catalog domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer for the catalog service.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishCustomerCreated publishes a customer.created event.
func (p *Producer) PublishCustomerCreated(ctx context.Context, c *domain.Customer) error {
	return p.publishCustomer(ctx, TopicCustomerCreated, c)
}

// PublishCustomerUpdated publishes a customer.updated event.
func (p *Producer) PublishCustomerUpdated(ctx context.Context, c *domain.Customer) error {
	return p.publishCustomer(ctx, TopicCustomerUpdated, c)
}

// PublishCustomerDeleted publishes a customer.deleted event.
func (p *Producer) PublishCustomerDeleted(ctx context.Context, customerID string) error {
	return p.publish(ctx, TopicCustomerDeleted, customerID, AggregateTypeCustomer, DeletedEventData{ID: customerID})
}

// PublishProductCreated publishes a product.created event.
func (p *Producer) PublishProductCreated(ctx context.Context, pr *domain.Product) error {
	return p.publishProduct(ctx, TopicProductCreated, pr)
}

// PublishProductUpdated publishes a product.updated event.
func (p *Producer) PublishProductUpdated(ctx context.Context, pr *domain.Product) error {
	return p.publishProduct(ctx, TopicProductUpdated, pr)
}

// PublishProductDeleted publishes a product.deleted event.
func (p *Producer) PublishProductDeleted(ctx context.Context, productID string) error {
	return p.publish(ctx, TopicProductDeleted, productID, AggregateTypeProduct, DeletedEventData{ID: productID})
}

func (p *Producer) publishCustomer(ctx context.Context, topic string, c *domain.Customer) error {
	data := CustomerEventData{
		ID:       c.ID,
		Name:     c.Name,
		Email:    c.Email,
		IsActive: c.IsActive,
	}
	return p.publish(ctx, topic, c.ID, AggregateTypeCustomer, data)
}

func (p *Producer) publishProduct(ctx context.Context, topic string, pr *domain.Product) error {
	data := ProductEventData{
		ID:             pr.ID,
		Name:           pr.Name,
		SKU:            pr.SKU,
		Price:          pr.Price,
		InventoryCount: pr.InventoryCount,
		IsActive:       pr.IsActive,
	}
	return p.publish(ctx, topic, pr.ID, AggregateTypeProduct, data)
}

func (p *Producer) publish(ctx context.Context, topic, aggregateID, aggregateType string, data any) error {
	event, err := pkgkafka.NewEvent(topic, aggregateID, aggregateType, SourceCatalogService, data)
	if err != nil {
		return fmt.Errorf("create %s event: %w", topic, err)
	}

	if err := p.kafka.Publish(ctx, topic, event); err != nil {
		return fmt.Errorf("publish %s event: %w", topic, err)
	}

	p.logger.DebugContext(ctx, "published event",
		slog.String("topic", topic),
		slog.String("aggregate_id", aggregateID),
	)

	return nil
}
