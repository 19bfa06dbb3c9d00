package repositories

import (
	"errors"
	"fmt"

	"tienda/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	sqlite3 "github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// pgUniqueViolation is the PostgreSQL error code for unique-constraint
// violations.
const pgUniqueViolation = "23505"

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
// Unique-constraint violations are classified by inspecting the driver error
// directly, so the conflicting constraint and value stay in the error chain.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// Create persists a new product together with its attached images.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	assignImageIDs(product)
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", translate(err))
	}
	return nil
}

// FindPage retrieves one page of products, images preloaded, in the
// database's default order.
func (r *GORMProductRepository) FindPage(limit, offset int) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Preload("Images").Limit(limit).Offset(offset).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", translate(err))
	}
	return products, nil
}

// FindByID retrieves a single product by its ID, images preloaded.
func (r *GORMProductRepository) FindByID(id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.Preload("Images").First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id, translate(err))
	}
	return &product, nil
}

// FindByTitleOrSlug retrieves a single product whose title or slug matches
// the term, compared case-insensitively. When both predicates could match
// different rows the first row the database returns wins; the ordering is
// implementation-defined.
func (r *GORMProductRepository) FindByTitleOrSlug(term string) (*models.Product, error) {
	var product models.Product
	err := r.db.Preload("Images").
		Where("LOWER(title) = ? OR slug = ?", term, term).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product with term %s: %w", term, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get product by term %s: %w", term, translate(err))
	}
	return &product, nil
}

// Update persists the product's scalar fields. The stored image rows are
// left exactly as they are.
func (r *GORMProductRepository) Update(product *models.Product) error {
	// Save falls back to an INSERT when the row is missing, so existence is
	// checked first rather than inferred from RowsAffected.
	var count int64
	if err := r.db.Model(&models.Product{}).Where("id = ?", product.ID).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to update product: %w", translate(err))
	}
	if count == 0 {
		return fmt.Errorf("product with ID %s: %w", product.ID, ErrNotFound)
	}
	if err := r.db.Omit("Images").Save(product).Error; err != nil {
		return fmt.Errorf("failed to update product: %w", translate(err))
	}
	return nil
}

// Save persists the product's fields and inserts the attached image records
// as new rows. Used by the image-replacement flow, where the old rows are
// deleted in the same transaction.
func (r *GORMProductRepository) Save(product *models.Product) error {
	assignImageIDs(product)
	if err := r.db.Omit("Images").Save(product).Error; err != nil {
		return fmt.Errorf("failed to save product: %w", translate(err))
	}
	if len(product.Images) > 0 {
		if err := r.db.Create(&product.Images).Error; err != nil {
			return fmt.Errorf("failed to save product images: %w", translate(err))
		}
	}
	return nil
}

// Delete removes the product and, through the association, its images.
func (r *GORMProductRepository) Delete(product *models.Product) error {
	res := r.db.Select(clause.Associations).Delete(product)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product: %w", translate(res.Error))
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product with ID %s: %w", product.ID, ErrNotFound)
	}
	return nil
}

// DeleteImagesByProduct removes every image row owned by the given product.
func (r *GORMProductRepository) DeleteImagesByProduct(productID string) error {
	if err := r.db.Where("product_id = ?", productID).Delete(&models.ProductImage{}).Error; err != nil {
		return fmt.Errorf("failed to delete images of product %s: %w", productID, translate(err))
	}
	return nil
}

// DeleteAll removes every product and every image row. Used by the reseed flow.
func (r *GORMProductRepository) DeleteAll() error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		session := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		if err := session.Delete(&models.ProductImage{}).Error; err != nil {
			return err
		}
		return session.Delete(&models.Product{}).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete all products: %w", translate(err))
	}
	return nil
}

// Transaction runs fn against a repository bound to one database transaction.
// GORM commits when fn returns nil and rolls back on error or panic, so no
// exit path leaves the transaction open.
func (r *GORMProductRepository) Transaction(fn func(ProductRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewGORMProductRepository(tx))
	})
}

// assignImageIDs gives fresh UUIDs to image records that have not been
// persisted yet.
func assignImageIDs(product *models.Product) {
	for i := range product.Images {
		if product.Images[i].ID == "" {
			product.Images[i].ID = uuid.New().String()
		}
		product.Images[i].ProductID = product.ID
	}
}

// translate maps driver-level unique-constraint violations onto
// ErrDuplicateKey, carrying the driver's own message so callers can report
// which constraint and value conflicted. Postgres puts the conflicting value
// in the error detail ("Key (title)=(...) already exists."); SQLite names the
// constraint ("UNIQUE constraint failed: products.title").
func translate(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		detail := pgErr.Detail
		if detail == "" {
			detail = pgErr.Message
		}
		return fmt.Errorf("%w: %s", ErrDuplicateKey, detail)
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) &&
		(sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey) {
		return fmt.Errorf("%w: %v", ErrDuplicateKey, err)
	}
	return err
}
