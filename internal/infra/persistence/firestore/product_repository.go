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

// productDoc is the Firestore document shape for the 'products' collection.
type productDoc struct {
	Name          string    `firestore:"name"`
	Description   string    `firestore:"description"`
	Category      string    `firestore:"category"`
	Price         float64   `firestore:"price"`
	StockQuantity int       `firestore:"stock_quantity"`
	ImageURL      string    `firestore:"image_url"`
	CreatedAt     time.Time `firestore:"created_at"`
	UpdatedAt     time.Time `firestore:"updated_at"`
}

// productRepository implements the repository.ProductRepository interface.
type productRepository struct {
	client *fs.Client
}

// NewProductRepository is the constructor for productRepository.
func NewProductRepository(client *fs.Client) repository.ProductRepository {
	return &productRepository{
		client: client,
	}
}

// ListProducts returns the full catalog, newest first.
func (repo *productRepository) ListProducts(ctx context.Context) ([]*entity.Product, error) {
	query := repo.client.Collection(productsCollection).
		OrderBy("created_at", fs.Desc)

	return repo.collectProducts(ctx, query.Documents(ctx))
}

// ListProductsByCategory returns the catalog filtered by category.
func (repo *productRepository) ListProductsByCategory(ctx context.Context, category string) ([]*entity.Product, error) {
	query := repo.client.Collection(productsCollection).
		Where("category", "==", category).
		OrderBy("created_at", fs.Desc)

	return repo.collectProducts(ctx, query.Documents(ctx))
}

// GetProduct retrieves a product document by id.
func (repo *productRepository) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	snap, err := repo.client.Collection(productsCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to get product document")
	}

	var doc productDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, errors.Wrap(err, "failed to decode product document")
	}

	return toProductDomain(snap.Ref.ID, &doc), nil
}

// SaveProduct writes the full product document, creating it when absent.
func (repo *productRepository) SaveProduct(ctx context.Context, product *entity.Product) error {
	ref := repo.client.Collection(productsCollection).Doc(product.ID)

	if _, err := ref.Set(ctx, fromProductDomain(product)); err != nil {
		return errors.Wrap(err, "failed to save product document")
	}

	return nil
}

// DeleteProduct removes a product document.
func (repo *productRepository) DeleteProduct(ctx context.Context, id string) error {
	if _, err := repo.client.Collection(productsCollection).Doc(id).Delete(ctx); err != nil {
		return errors.Wrap(err, "failed to delete product document")
	}

	return nil
}

// AdjustStock changes the stock quantity by delta inside a Firestore
// transaction so concurrent checkouts cannot oversell.
func (repo *productRepository) AdjustStock(ctx context.Context, id string, delta int) error {
	ref := repo.client.Collection(productsCollection).Doc(id)

	err := repo.client.RunTransaction(ctx, func(_ context.Context, tx *fs.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return repository.ErrProductNotFound
			}

			return errors.Wrap(err, "failed to read product for stock adjustment")
		}

		var doc productDoc
		if err := snap.DataTo(&doc); err != nil {
			return errors.Wrap(err, "failed to decode product document")
		}

		next := doc.StockQuantity + delta
		if next < 0 {
			return repository.ErrInsufficientStock
		}

		return tx.Update(ref, []fs.Update{
			{Path: "stock_quantity", Value: next},
			{Path: "updated_at", Value: time.Now()},
		})
	})
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) || errors.Is(err, repository.ErrInsufficientStock) {
			return err
		}

		return errors.Wrap(err, "stock adjustment transaction failed")
	}

	return nil
}

func (repo *productRepository) collectProducts(_ context.Context, iter *fs.DocumentIterator) ([]*entity.Product, error) {
	defer iter.Stop()

	products := make([]*entity.Product, 0)
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to iterate product documents")
		}

		var doc productDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, errors.Wrap(err, "failed to decode product document")
		}

		products = append(products, toProductDomain(snap.Ref.ID, &doc))
	}

	return products, nil
}

// --- Mapper Functions ---

func toProductDomain(id string, data *productDoc) *entity.Product {
	if data == nil {
		return nil
	}

	return &entity.Product{
		ID:            id,
		Name:          data.Name,
		Description:   data.Description,
		Category:      data.Category,
		Price:         data.Price,
		StockQuantity: data.StockQuantity,
		ImageURL:      data.ImageURL,
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}
}

func fromProductDomain(data *entity.Product) *productDoc {
	if data == nil {
		return nil
	}

	return &productDoc{
		Name:          data.Name,
		Description:   data.Description,
		Category:      data.Category,
		Price:         data.Price,
		StockQuantity: data.StockQuantity,
		ImageURL:      data.ImageURL,
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}
}
