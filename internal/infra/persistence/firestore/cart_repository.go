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

// cartItemDoc is the Firestore document shape for one cart line, stored
// under carts/{uid}/items/{productID}.
type cartItemDoc struct {
	Name     string    `firestore:"name"`
	Price    float64   `firestore:"price"`
	Quantity int       `firestore:"quantity"`
	ImageURL string    `firestore:"image_url"`
	AddedAt  time.Time `firestore:"added_at"`
}

// cartRepository implements the repository.CartRepository interface.
type cartRepository struct {
	client *fs.Client
}

// NewCartRepository is the constructor for cartRepository.
func NewCartRepository(client *fs.Client) repository.CartRepository {
	return &cartRepository{
		client: client,
	}
}

func (repo *cartRepository) items(userID string) *fs.CollectionRef {
	return repo.client.Collection(cartsCollection).Doc(userID).Collection(cartItemsSub)
}

// ListItems returns the cart lines of a user, oldest first.
func (repo *cartRepository) ListItems(ctx context.Context, userID string) ([]*entity.CartItem, error) {
	iter := repo.items(userID).OrderBy("added_at", fs.Asc).Documents(ctx)
	defer iter.Stop()

	items := make([]*entity.CartItem, 0)
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to iterate cart items")
		}

		var doc cartItemDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, errors.Wrap(err, "failed to decode cart item")
		}

		items = append(items, toCartItemDomain(snap.Ref.ID, &doc))
	}

	return items, nil
}

// UpsertItem writes a cart line, replacing any line for the same product.
func (repo *cartRepository) UpsertItem(ctx context.Context, userID string, item *entity.CartItem) error {
	if _, err := repo.items(userID).
		Doc(item.ProductID).
		Set(ctx, fromCartItemDomain(item)); err != nil {
		return errors.Wrap(err, "failed to upsert cart item")
	}

	return nil
}

// UpdateQuantity changes the quantity of an existing line.
func (repo *cartRepository) UpdateQuantity(ctx context.Context, userID, productID string, quantity int) error {
	_, err := repo.items(userID).Doc(productID).Update(ctx, []fs.Update{
		{Path: "quantity", Value: quantity},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return repository.ErrCartItemNotFound
		}

		return errors.Wrap(err, "failed to update cart item quantity")
	}

	return nil
}

// RemoveItem deletes a cart line.
func (repo *cartRepository) RemoveItem(ctx context.Context, userID, productID string) error {
	if _, err := repo.items(userID).Doc(productID).Delete(ctx); err != nil {
		return errors.Wrap(err, "failed to remove cart item")
	}

	return nil
}

// ClearCart deletes every line of a user's cart.
func (repo *cartRepository) ClearCart(ctx context.Context, userID string) error {
	iter := repo.items(userID).Documents(ctx)
	defer iter.Stop()

	bulk := repo.client.BulkWriter(ctx)
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return errors.Wrap(err, "failed to iterate cart items for clear")
		}

		if _, err := bulk.Delete(snap.Ref); err != nil {
			return errors.Wrap(err, "failed to enqueue cart item delete")
		}
	}
	bulk.End()

	return nil
}

// --- Mapper Functions ---

func toCartItemDomain(productID string, data *cartItemDoc) *entity.CartItem {
	if data == nil {
		return nil
	}

	return &entity.CartItem{
		ProductID: productID,
		Name:      data.Name,
		Price:     data.Price,
		Quantity:  data.Quantity,
		ImageURL:  data.ImageURL,
		AddedAt:   data.AddedAt,
	}
}

func fromCartItemDomain(data *entity.CartItem) *cartItemDoc {
	if data == nil {
		return nil
	}

	return &cartItemDoc{
		Name:     data.Name,
		Price:    data.Price,
		Quantity: data.Quantity,
		ImageURL: data.ImageURL,
		AddedAt:  data.AddedAt,
	}
}
