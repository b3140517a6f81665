package firestore

import (
	"context"
	"time"

	"shopfront/internal/domain/entity"
	"shopfront/internal/domain/repository"

	fs "cloud.google.com/go/firestore"
	"github.com/pkg/errors"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// orderDoc is the Firestore document shape for the 'orders' collection.
// The shipping address and cart lines are embedded snapshots.
type orderDoc struct {
	UserID          string         `firestore:"user_id"`
	Items           []*cartItemDoc `firestore:"items"`
	ItemProductIDs  []string       `firestore:"item_product_ids"`
	ShippingAddress addressSnap    `firestore:"shipping_address"`
	Subtotal        float64        `firestore:"subtotal"`
	ShippingFee     float64        `firestore:"shipping_fee"`
	Total           float64        `firestore:"total"`
	PaymentMethod   string         `firestore:"payment_method"`
	Status          string         `firestore:"status"`
	PlacedAt        time.Time      `firestore:"placed_at"`
	UpdatedAt       time.Time      `firestore:"updated_at"`
}

// addressSnap is the embedded shipping address snapshot.
type addressSnap struct {
	Name             string  `firestore:"name"`
	AddressLine1     string  `firestore:"address_line1"`
	AddressLine2     string  `firestore:"address_line2"`
	City             string  `firestore:"city"`
	State            string  `firestore:"state"`
	ZipCode          string  `firestore:"zip_code"`
	Country          string  `firestore:"country"`
	PhoneNumber      string  `firestore:"phone_number"`
	Latitude         float64 `firestore:"latitude"`
	Longitude        float64 `firestore:"longitude"`
	FormattedAddress string  `firestore:"formatted_address"`
}

// orderRepository implements the repository.OrderRepository interface.
type orderRepository struct {
	client *fs.Client
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(client *fs.Client) repository.OrderRepository {
	return &orderRepository{
		client: client,
	}
}

// CreateOrder writes a new order document under its pre-assigned id.
func (repo *orderRepository) CreateOrder(ctx context.Context, order *entity.Order) error {
	if _, err := repo.client.Collection(ordersCollection).
		Doc(order.ID).
		Create(ctx, fromOrderDomain(order)); err != nil {
		return errors.Wrap(err, "failed to create order document")
	}

	return nil
}

// GetOrder retrieves an order document by id.
func (repo *orderRepository) GetOrder(ctx context.Context, id string) (*entity.Order, error) {
	snap, err := repo.client.Collection(ordersCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to get order document")
	}

	var doc orderDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, errors.Wrap(err, "failed to decode order document")
	}

	return toOrderDomain(snap.Ref.ID, &doc), nil
}

// ListOrdersByUser returns a user's orders, newest first.
func (repo *orderRepository) ListOrdersByUser(ctx context.Context, userID string) ([]*entity.Order, error) {
	iter := repo.client.Collection(ordersCollection).
		Where("user_id", "==", userID).
		OrderBy("placed_at", fs.Desc).
		Documents(ctx)
	defer iter.Stop()

	orders := make([]*entity.Order, 0)
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to iterate order documents")
		}

		var doc orderDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, errors.Wrap(err, "failed to decode order document")
		}

		orders = append(orders, toOrderDomain(snap.Ref.ID, &doc))
	}

	return orders, nil
}

// UpdateStatus sets the lifecycle status of an order.
func (repo *orderRepository) UpdateStatus(ctx context.Context, id string, orderStatus entity.OrderStatus) error {
	_, err := repo.client.Collection(ordersCollection).Doc(id).Update(ctx, []fs.Update{
		{Path: "status", Value: string(orderStatus)},
		{Path: "updated_at", Value: time.Now()},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return repository.ErrOrderNotFound
		}

		return errors.Wrap(err, "failed to update order status")
	}

	return nil
}

// --- Mapper Functions ---

func toOrderDomain(id string, data *orderDoc) *entity.Order {
	if data == nil {
		return nil
	}

	items := make([]*entity.CartItem, 0, len(data.Items))
	for idx, item := range data.Items {
		productID := ""
		if idx < len(data.ItemProductIDs) {
			productID = data.ItemProductIDs[idx]
		}
		items = append(items, toCartItemDomain(productID, item))
	}

	return &entity.Order{
		ID:     id,
		UserID: data.UserID,
		Items:  items,
		ShippingAddress: entity.Address{
			Name:             data.ShippingAddress.Name,
			AddressLine1:     data.ShippingAddress.AddressLine1,
			AddressLine2:     data.ShippingAddress.AddressLine2,
			City:             data.ShippingAddress.City,
			State:            data.ShippingAddress.State,
			ZipCode:          data.ShippingAddress.ZipCode,
			Country:          data.ShippingAddress.Country,
			PhoneNumber:      data.ShippingAddress.PhoneNumber,
			Latitude:         data.ShippingAddress.Latitude,
			Longitude:        data.ShippingAddress.Longitude,
			FormattedAddress: data.ShippingAddress.FormattedAddress,
		},
		Subtotal:      data.Subtotal,
		ShippingFee:   data.ShippingFee,
		Total:         data.Total,
		PaymentMethod: data.PaymentMethod,
		Status:        entity.OrderStatus(data.Status),
		PlacedAt:      data.PlacedAt,
		UpdatedAt:     data.UpdatedAt,
	}
}

func fromOrderDomain(data *entity.Order) *orderDoc {
	if data == nil {
		return nil
	}

	items := make([]*cartItemDoc, 0, len(data.Items))
	productIDs := make([]string, 0, len(data.Items))
	for _, item := range data.Items {
		items = append(items, fromCartItemDomain(item))
		productIDs = append(productIDs, item.ProductID)
	}

	return &orderDoc{
		UserID:         data.UserID,
		Items:          items,
		ItemProductIDs: productIDs,
		ShippingAddress: addressSnap{
			Name:             data.ShippingAddress.Name,
			AddressLine1:     data.ShippingAddress.AddressLine1,
			AddressLine2:     data.ShippingAddress.AddressLine2,
			City:             data.ShippingAddress.City,
			State:            data.ShippingAddress.State,
			ZipCode:          data.ShippingAddress.ZipCode,
			Country:          data.ShippingAddress.Country,
			PhoneNumber:      data.ShippingAddress.PhoneNumber,
			Latitude:         data.ShippingAddress.Latitude,
			Longitude:        data.ShippingAddress.Longitude,
			FormattedAddress: data.ShippingAddress.FormattedAddress,
		},
		Subtotal:      data.Subtotal,
		ShippingFee:   data.ShippingFee,
		Total:         data.Total,
		PaymentMethod: data.PaymentMethod,
		Status:        string(data.Status),
		PlacedAt:      data.PlacedAt,
		UpdatedAt:     data.UpdatedAt,
	}
}
