package card

import (
	"log"
	"strconv"
	"time"

	"gorm.io/gorm"

	"magiccards.GO/config"
	"magiccards.GO/core/cache"
	catalogEntity "magiccards.GO/model/entity/catalog"
	catalogRepo "magiccards.GO/model/repository/catalog"
)

// RootCategoryName is the parent category every imported set lands under.
const RootCategoryName = "Magic: the Gathering"

// CategoryService resolves set names to category entities with
// lookup-or-create semantics. Resolution is idempotent: the same name
// under the same parent always yields the same entity.
type CategoryService struct {
	categories *catalogRepo.CategoryRepository
	cache      *cache.Cache
	rootID     uint
}

func NewCategoryService(db *gorm.DB, rootID uint) *CategoryService {
	return &CategoryService{
		categories: catalogRepo.GetCategoryRepository(db),
		cache:      cache.NewCache(),
		rootID:     rootID,
	}
}

// Resolve finds or creates the category named name under parent. A nil
// parent means the store root. It never returns an error: failures are
// logged and produce a sentinel node the caller must check with
// IsSentinel before using the id.
func (s *CategoryService) Resolve(name string, parent *catalogEntity.Category) *catalogEntity.Category {
	if parent == nil {
		root, ok, err := s.categories.Get(s.rootID)
		if err != nil || !ok {
			log.Printf("category: root category %d could not be resolved: %v", s.rootID, err)
			return &catalogEntity.Category{}
		}
		parent = root
	}

	key := cache.Key("category", parent.EntityID, name)
	if v, ok := s.cache.Get(key); ok {
		return v.(*catalogEntity.Category)
	}
	if cat := s.fromRedis(key); cat != nil {
		s.cache.Set(key, cat, 0)
		return cat
	}

	// Lookup is scoped to the parent so same-named categories under
	// different parents stay distinct.
	cat, found, err := s.categories.FindByName(name, parent.EntityID)
	if err != nil {
		log.Printf("category: lookup %q failed: %v", name, err)
		return &catalogEntity.Category{}
	}
	if !found {
		cat, err = s.categories.CreateUnder(name, parent)
		if err != nil {
			log.Printf("category: create %q under %d failed: %v", name, parent.EntityID, err)
			return &catalogEntity.Category{}
		}
	}

	s.cache.Set(key, cat, 0)
	s.toRedis(key, cat)
	return cat
}

// fromRedis checks the optional cross-run cache; a nil client or any
// error is a miss.
func (s *CategoryService) fromRedis(key string) *catalogEntity.Category {
	if config.RedisClient == nil {
		return nil
	}
	v, err := config.RedisClient.Get(config.RedisCtx(), "magiccards:"+key).Result()
	if err != nil {
		return nil
	}
	id, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return nil
	}
	cat, ok, err := s.categories.Get(uint(id))
	if err != nil || !ok {
		return nil
	}
	return cat
}

func (s *CategoryService) toRedis(key string, cat *catalogEntity.Category) {
	if config.RedisClient == nil {
		return
	}
	id := strconv.FormatUint(uint64(cat.EntityID), 10)
	config.RedisClient.Set(config.RedisCtx(), "magiccards:"+key, id, 24*time.Hour)
}
