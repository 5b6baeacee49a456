package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go-hospital-encounter/internal/domain/entity"
	"go-hospital-encounter/internal/domain/gateway"
	domainRepo "go-hospital-encounter/internal/domain/repository"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	// Redis key prefix for cached catalog searches
	RedisMedicineSearchKeyPrefix = "medicine:search:"

	// Timeout for individual Redis operations
	redisCacheTimeout = 2 * time.Second
)

// MedicineCatalogService serves catalog searches from PostgreSQL with a
// Redis cache-aside in front. The cache is optional: any Redis failure is
// logged and the search falls through to the database.
type MedicineCatalogService struct {
	db           *gorm.DB
	redisClient  *redis.Client
	log          *logrus.Logger
	medicineRepo domainRepo.MedicineRepository
	ttl          time.Duration
}

var _ gateway.MedicineCatalog = (*MedicineCatalogService)(nil)

func NewMedicineCatalogService(
	db *gorm.DB,
	redisClient *redis.Client,
	log *logrus.Logger,
	medicineRepo domainRepo.MedicineRepository,
	ttl time.Duration,
) *MedicineCatalogService {
	return &MedicineCatalogService{
		db:           db,
		redisClient:  redisClient,
		log:          log,
		medicineRepo: medicineRepo,
		ttl:          ttl,
	}
}

func (s *MedicineCatalogService) SearchMedicines(ctx context.Context, filter entity.MedicineFilter) ([]entity.Medicine, error) {
	key := RedisMedicineSearchKeyPrefix + filter.CacheKey()

	if medicines, ok := s.readCache(ctx, key); ok {
		return medicines, nil
	}

	medicines, err := s.medicineRepo.Search(s.db.WithContext(ctx), filter)
	if err != nil {
		s.log.Warnf("Failed to search medicines: %+v", err)
		return nil, translateError(err, "Failed to search medicines")
	}
	if medicines == nil {
		medicines = []entity.Medicine{}
	}

	s.writeCache(ctx, key, medicines)
	return medicines, nil
}

func (s *MedicineCatalogService) readCache(ctx context.Context, key string) ([]entity.Medicine, bool) {
	if s.redisClient == nil || s.ttl <= 0 {
		return nil, false
	}

	cacheCtx, cancel := context.WithTimeout(ctx, redisCacheTimeout)
	defer cancel()

	cached, err := s.redisClient.Get(cacheCtx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.log.Warnf("Failed to read medicine cache %s: %+v", key, err)
		}
		return nil, false
	}

	var medicines []entity.Medicine
	if err := json.Unmarshal(cached, &medicines); err != nil {
		s.log.Warnf("Discarding unreadable medicine cache entry %s: %+v", key, err)
		return nil, false
	}
	return medicines, true
}

func (s *MedicineCatalogService) writeCache(ctx context.Context, key string, medicines []entity.Medicine) {
	if s.redisClient == nil || s.ttl <= 0 {
		return
	}

	payload, err := json.Marshal(medicines)
	if err != nil {
		s.log.Warnf("Failed to encode medicine cache entry %s: %+v", key, err)
		return
	}

	cacheCtx, cancel := context.WithTimeout(ctx, redisCacheTimeout)
	defer cancel()

	if err := s.redisClient.Set(cacheCtx, key, payload, s.ttl).Err(); err != nil {
		s.log.Warnf("Failed to write medicine cache %s: %+v", key, err)
	}
}
