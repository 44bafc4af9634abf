package usecase

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fekuna/storefront-service/internal/event"
	"github.com/fekuna/storefront-service/internal/model"
	"github.com/fekuna/storefront-service/internal/product"
	"github.com/fekuna/storefront-service/internal/product/dto"
	"github.com/fekuna/storefront-service/pkg/cache"
	"github.com/fekuna/storefront-service/pkg/logger"
)

const (
	listCachePrefix = "products:list:"
	// listGenerationKey is bumped on every catalog write and is part of each
	// list cache key. It must not match listCachePrefix.
	listGenerationKey = "products:gen"
	DefaultListTTL    = 5 * time.Minute
)

// ListCache stores serialized product listings. A missing key is reported
// with cache.ErrMiss.
type ListCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Incr(ctx context.Context, key string) (int64, error)
	DeletePattern(ctx context.Context, pattern string) error
}

type SearchIndex interface {
	IndexProduct(ctx context.Context, p *model.Product) error
	DeleteProduct(ctx context.Context, id string) error
	SearchProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, error)
}

type productUseCase struct {
	repo       product.Repository
	cache      ListCache
	index      SearchIndex
	dispatcher event.Dispatcher
	listTTL    time.Duration
	logger     logger.ZapLogger
	now        func() time.Time
}

// NewProductUseCase wires the catalog. cache and index may be nil when Redis
// or Elasticsearch are not configured.
func NewProductUseCase(repo product.Repository, listCache ListCache, index SearchIndex, dispatcher event.Dispatcher, listTTL time.Duration, log logger.ZapLogger) product.UseCase {
	if dispatcher == nil {
		dispatcher = event.NopDispatcher{}
	}
	if listTTL <= 0 {
		listTTL = DefaultListTTL
	}
	return &productUseCase{
		repo:       repo,
		cache:      listCache,
		index:      index,
		dispatcher: dispatcher,
		listTTL:    listTTL,
		logger:     log,
		now:        time.Now,
	}
}

func (uc *productUseCase) CreateProduct(ctx context.Context, input *dto.ProductInput) (*model.Product, error) {
	p := &model.Product{
		BaseModel: model.BaseModel{ID: uuid.New().String(), CreatedAt: uc.now().UTC()},
	}
	if err := applyInput(p, input, model.DefaultStock, true); err != nil {
		return nil, err
	}

	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	uc.invalidateListCache(ctx)
	uc.syncToIndex(ctx, p)
	uc.dispatch(ctx, model.ProductCreated{ProductID: p.ID, Name: p.Name, Price: p.Price})

	return p, nil
}

func (uc *productUseCase) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: product %s", model.ErrNotFound, id)
	}
	return p, nil
}

func (uc *productUseCase) ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, error) {
	if filters == nil {
		filters = &dto.ProductFilters{}
	}

	if filters.Search != "" {
		if uc.index != nil {
			products, err := uc.index.SearchProducts(ctx, filters)
			if err == nil {
				return orEmpty(products), nil
			}
			uc.logger.Error("product search failed, falling back to database", zap.Error(err))
		}
		products, err := uc.repo.FindAll(ctx, filters)
		if err != nil {
			return nil, err
		}
		return orEmpty(products), nil
	}

	gen, cacheable := uc.listGeneration(ctx)
	var cacheKey string
	if cacheable {
		key, err := generateCacheKey(gen, filters)
		if err != nil {
			return nil, err
		}
		cacheKey = key
		if products, ok := uc.cachedList(ctx, cacheKey); ok {
			return products, nil
		}
	}

	products, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, err
	}
	products = orEmpty(products)

	// A write that landed while FindAll ran may not be reflected in products.
	if cacheable {
		if after, ok := uc.listGeneration(ctx); ok && after == gen {
			uc.storeList(ctx, cacheKey, products)
		}
	}
	return products, nil
}

func (uc *productUseCase) UpdateProduct(ctx context.Context, id string, input *dto.ProductInput) (*model.Product, error) {
	existing, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("%w: product %s", model.ErrNotFound, id)
	}

	p := &model.Product{BaseModel: existing.BaseModel}
	if err := applyInput(p, input, 0, false); err != nil {
		return nil, err
	}

	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	uc.invalidateListCache(ctx)
	uc.syncToIndex(ctx, p)
	uc.dispatch(ctx, model.ProductUpdated{ProductID: p.ID, Active: p.Active})

	return p, nil
}

// DeleteProduct succeeds for ids that do not exist.
func (uc *productUseCase) DeleteProduct(ctx context.Context, id string) error {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return nil
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}

	uc.invalidateListCache(ctx)
	if uc.index != nil {
		if err := uc.index.DeleteProduct(ctx, id); err != nil {
			uc.logger.Error("failed to remove product from search index", zap.String("product_id", id), zap.Error(err))
		}
	}
	uc.dispatch(ctx, model.ProductDeleted{ProductID: id})

	return nil
}

func generateCacheKey(gen int64, filters *dto.ProductFilters) (string, error) {
	data, err := json.Marshal(filters)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%d:%x", listCachePrefix, gen, md5.Sum(data)), nil
}

// listGeneration reports the current catalog generation. ok is false when
// there is no cache or it cannot be read, in which case nothing is cached.
func (uc *productUseCase) listGeneration(ctx context.Context) (int64, bool) {
	if uc.cache == nil {
		return 0, false
	}
	val, err := uc.cache.Get(ctx, listGenerationKey)
	if errors.Is(err, cache.ErrMiss) {
		return 0, true
	}
	if err != nil {
		uc.logger.Warn("product list generation read failed", zap.Error(err))
		return 0, false
	}
	gen, err := strconv.ParseInt(string(val), 10, 64)
	if err != nil {
		uc.logger.Warn("product list generation is not a number", zap.ByteString("value", val))
		return 0, false
	}
	return gen, true
}

func (uc *productUseCase) cachedList(ctx context.Context, key string) ([]model.Product, bool) {
	if uc.cache == nil {
		return nil, false
	}
	val, err := uc.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			uc.logger.Warn("product list cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}

	var products []model.Product
	if err := json.Unmarshal(val, &products); err != nil {
		uc.logger.Warn("discarding undecodable product list cache entry", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return orEmpty(products), true
}

func (uc *productUseCase) storeList(ctx context.Context, key string, products []model.Product) {
	if uc.cache == nil {
		return
	}
	data, err := json.Marshal(products)
	if err != nil {
		uc.logger.Warn("failed to encode product list for cache", zap.Error(err))
		return
	}
	if err := uc.cache.Set(ctx, key, data, uc.listTTL); err != nil {
		uc.logger.Warn("product list cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (uc *productUseCase) invalidateListCache(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	if _, err := uc.cache.Incr(ctx, listGenerationKey); err != nil {
		uc.logger.Error("failed to bump product list generation", zap.Error(err))
	}
	if err := uc.cache.DeletePattern(ctx, listCachePrefix+"*"); err != nil {
		uc.logger.Error("failed to invalidate product list cache", zap.Error(err))
	}
}

func (uc *productUseCase) syncToIndex(ctx context.Context, p *model.Product) {
	if uc.index == nil {
		return
	}
	if err := uc.index.IndexProduct(ctx, p); err != nil {
		uc.logger.Error("failed to index product", zap.String("product_id", p.ID), zap.Error(err))
	}
}

func (uc *productUseCase) dispatch(ctx context.Context, e event.Event) {
	if err := uc.dispatcher.Dispatch(ctx, e); err != nil {
		uc.logger.Error("failed to publish event", zap.String("event_type", e.Type()), zap.Error(err))
	}
}

func orEmpty(products []model.Product) []model.Product {
	if products == nil {
		return []model.Product{}
	}
	return products
}
