package service

import (
	"context"
	stdErrors "errors"
	"strings"

	"github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/metrics"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"go.opentelemetry.io/otel/attribute"
)

type InteractionService interface {
	ToggleLike(ctx context.Context, userID uuid.UUID, productSlug string) (*models.LikeResponse, error)
	ListLikedProducts(ctx context.Context, userID uuid.UUID) ([]*models.Product, error)
	AddComment(ctx context.Context, userID uuid.UUID, productID int64, text string) (*models.Comment, error)
	ListComments(ctx context.Context, productID int64) ([]*models.Comment, error)
}

type interactionService struct {
	repo    repository.InteractionRepository
	catalog repository.CatalogRepository
	policy  *bluemonday.Policy
}

func NewInteractionService(repo repository.InteractionRepository, catalog repository.CatalogRepository) InteractionService {
	return &interactionService{repo: repo, catalog: catalog, policy: bluemonday.StrictPolicy()}
}

// ToggleLike flips the like state of the product for the user; calling it twice
// restores the original state.
func (s *interactionService) ToggleLike(ctx context.Context, userID uuid.UUID, productSlug string) (*models.LikeResponse, error) {

	ctx, span := tracer.Start(ctx, "InteractionService.ToggleLike")
	span.SetAttributes(attribute.String("product.slug", productSlug))
	var err error
	defer func() { endSpan(span, err) }()

	if userID == uuid.Nil {
		err = errors.AuthorizationError("Authentication required")
		return nil, err
	}

	product, err := s.catalog.GetProductBySlug(ctx, productSlug)
	if err != nil {
		if stdErrors.Is(err, repository.ErrNotFound) {
			return nil, errors.NotFoundError("Product not found").WithError(err)
		}
		return nil, errors.DatabaseError("Failed to fetch product").WithError(err)
	}

	liked, err := s.repo.ToggleLike(ctx, userID, product.ID)
	if err != nil {
		if stdErrors.Is(err, repository.ErrNotFound) {
			return nil, errors.NotFoundError("Product not found").WithError(err)
		}
		return nil, errors.DatabaseError("Failed to toggle like").WithError(err)
	}

	metrics.ObserveLikeToggle(liked)

	return &models.LikeResponse{Liked: liked}, nil
}

func (s *interactionService) ListLikedProducts(ctx context.Context, userID uuid.UUID) ([]*models.Product, error) {

	if userID == uuid.Nil {
		return nil, errors.AuthorizationError("Authentication required")
	}

	products, err := s.repo.ListLikedProducts(ctx, userID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch liked products").WithError(err)
	}

	return products, nil
}

// AddComment strips all markup from text and rejects comments that are empty
// before or after stripping.
func (s *interactionService) AddComment(ctx context.Context, userID uuid.UUID, productID int64, text string) (*models.Comment, error) {

	ctx, span := tracer.Start(ctx, "InteractionService.AddComment")
	span.SetAttributes(attribute.Int64("product.id", productID))
	var err error
	defer func() { endSpan(span, err) }()

	if userID == uuid.Nil {
		err = errors.AuthorizationError("Authentication required")
		return nil, err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		err = errors.AddValidationError("text", "comment cannot be empty")
		return nil, err
	}

	sanitized := strings.TrimSpace(s.policy.Sanitize(text))
	if sanitized == "" {
		err = errors.AddValidationError("text", "comment has no readable text")
		return nil, err
	}

	if _, err = s.catalog.GetProductByID(ctx, productID); err != nil {
		if stdErrors.Is(err, repository.ErrNotFound) {
			return nil, errors.NotFoundError("Product not found").WithError(err)
		}
		return nil, errors.DatabaseError("Failed to fetch product").WithError(err)
	}

	comment := &models.Comment{ProductID: productID, Text: sanitized}

	if err = s.repo.CreateComment(ctx, userID, comment); err != nil {
		if stdErrors.Is(err, repository.ErrNotFound) {
			return nil, errors.NotFoundError("Product not found").WithError(err)
		}
		return nil, errors.DatabaseError("Failed to save comment").WithError(err)
	}

	metrics.ObserveCommentCreated()

	return comment, nil
}

func (s *interactionService) ListComments(ctx context.Context, productID int64) ([]*models.Comment, error) {

	if _, err := s.catalog.GetProductByID(ctx, productID); err != nil {
		if stdErrors.Is(err, repository.ErrNotFound) {
			return nil, errors.NotFoundError("Product not found").WithError(err)
		}
		return nil, errors.DatabaseError("Failed to fetch product").WithError(err)
	}

	comments, err := s.repo.ListComments(ctx, productID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch comments").WithError(err)
	}

	return comments, nil
}
