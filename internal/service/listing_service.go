package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/qoloner/qoloner-api/internal/models"
	"github.com/qoloner/qoloner-api/internal/utils"
)

// ProductWriter persists new products.
type ProductWriter interface {
	Create(ctx context.Context, product *models.Product) error
}

// UploadLedger tracks in-flight blob uploads so interrupted submissions
// leave a sweepable trace instead of a silent orphan.
type UploadLedger interface {
	Record(ctx context.Context, objectKey string) error
	Resolve(ctx context.Context, objectKey string) error
}

// BlobStorage is the image blob store collaborator.
type BlobStorage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

// ImageUpload carries the raw uploaded image file.
type ImageUpload struct {
	FileName    string
	ContentType string
	Data        []byte
}

// ListingInput is the listing submission form. Price arrives as the raw
// form value so the price check runs in validation order, not at parse time.
type ListingInput struct {
	Title       string
	Description string
	Price       string
	Category    string
	Image       *ImageUpload
}

// ListingService runs the listing submission workflow: validate, upload the
// image, insert the product row referencing the uploaded blob.
type ListingService struct {
	products ProductWriter
	uploads  UploadLedger
	storage  BlobStorage
	cache    SnapshotCache
}

// NewListingService constructs a ListingService. cache may be nil.
func NewListingService(products ProductWriter, uploads UploadLedger, storage BlobStorage, cache SnapshotCache) *ListingService {
	return &ListingService{products: products, uploads: uploads, storage: storage, cache: cache}
}

// CreateListing submits one listing for the given master. Exactly one blob
// write and at most one row insert happen per call; if the upload fails no
// insert is attempted, and if the insert fails the uploaded blob is deleted
// again. Store errors are returned verbatim and are terminal for the attempt.
func (s *ListingService) CreateListing(ctx context.Context, masterID int, in *ListingInput) (*models.Product, error) {
	price, err := validateListing(masterID, in)
	if err != nil {
		return nil, err
	}

	key, err := utils.ObjectKey("products", in.Image.FileName)
	if err != nil {
		return nil, err
	}

	// Ledger row first: a crash after the upload leaves a stale row the
	// cleanup worker can act on.
	if err := s.uploads.Record(ctx, key); err != nil {
		return nil, err
	}

	imageURL, err := s.storage.Upload(ctx, key, in.Image.Data, in.Image.ContentType)
	if err != nil {
		// No blob was written; the ledger row is noise.
		if rerr := s.uploads.Resolve(ctx, key); rerr != nil {
			log.Warn().Err(rerr).Str("key", key).Msg("failed to clear upload ledger after failed upload")
		}
		return nil, err
	}

	product := &models.Product{
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Price:       price,
		Category:    in.Category,
		ImageURL:    imageURL,
		MasterID:    masterID,
	}

	if err := s.products.Create(ctx, product); err != nil {
		// Compensate: the blob is unreferenced, delete it again.
		if derr := s.storage.Delete(ctx, key); derr != nil {
			log.Warn().Err(derr).Str("key", key).Msg("compensating blob delete failed - orphan left for cleanup worker")
		} else if rerr := s.uploads.Resolve(ctx, key); rerr != nil {
			log.Warn().Err(rerr).Str("key", key).Msg("failed to clear upload ledger after compensation")
		}
		return nil, err
	}

	if err := s.uploads.Resolve(ctx, key); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to resolve upload ledger for committed listing")
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}

	log.Info().Int("product_id", product.ID).Int("master_id", masterID).Msg("listing created")
	return product, nil
}

// validateListing checks the form in fixed order; the first failing field
// wins. Returns the parsed price on success.
func validateListing(masterID int, in *ListingInput) (int, error) {
	if strings.TrimSpace(in.Title) == "" {
		return 0, utils.NewValidationError("title", "Введите название товара")
	}
	if strings.TrimSpace(in.Description) == "" {
		return 0, utils.NewValidationError("description", "Введите описание")
	}
	price, err := strconv.Atoi(strings.TrimSpace(in.Price))
	if err != nil || price <= 0 {
		return 0, utils.NewValidationError("price", "Укажите корректную цену")
	}
	if !models.IsListingCategory(in.Category) {
		return 0, utils.NewValidationError("category", "Выберите категорию")
	}
	if in.Image == nil || len(in.Image.Data) == 0 {
		return 0, utils.NewValidationError("image", "Загрузите фото товара")
	}
	if masterID <= 0 {
		return 0, utils.NewValidationError("master_id", "Не указан ID мастерицы")
	}
	return price, nil
}
