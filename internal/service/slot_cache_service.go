package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go-clinic-booking/internal/domain/entity"
	"go-clinic-booking/internal/domain/repository"
	"go-clinic-booking/internal/scheduling"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	// Pub/sub channel used to fan out capacity rule invalidations
	// across instances.
	slotCacheChannel = "capacity_slots:invalidate"

	// How long a cached snapshot stays fresh before being reloaded
	// even without an explicit invalidation.
	slotCacheTTL = 5 * time.Minute
)

// SlotCacheService keeps an in-memory snapshot of the active capacity
// rules so the booking hot path does not hit PostgreSQL for rule data
// on every request.
//
// Invalidation flow:
// 1. Admin mutates capacity slots (create/update/delete)
// 2. Usecase calls Invalidate(), which publishes on the Redis channel
// 3. Every instance's subscriber goroutine drops its local snapshot
// 4. The next GetActiveRules call reloads from the database
type SlotCacheService struct {
	db          *gorm.DB
	redisClient *redis.Client
	log         *logrus.Logger
	slotRepo    repository.CapacitySlotRepository

	mu       sync.RWMutex
	rules    []scheduling.Rule
	loadedAt time.Time
	valid    bool

	// Graceful shutdown
	stopChan chan struct{}
	wg       sync.WaitGroup
	stopped  atomic.Bool
}

// NewSlotCacheService creates a new SlotCacheService.
// Starts a background goroutine subscribed to the invalidation channel.
// Call Stop() during graceful shutdown.
func NewSlotCacheService(db *gorm.DB, redisClient *redis.Client, log *logrus.Logger, slotRepo repository.CapacitySlotRepository) *SlotCacheService {
	svc := &SlotCacheService{
		db:          db,
		redisClient: redisClient,
		log:         log,
		slotRepo:    slotRepo,
		stopChan:    make(chan struct{}),
	}

	svc.wg.Add(1)
	go svc.subscribeLoop()

	return svc
}

// Stop gracefully shuts down the service.
// Safe to call multiple times.
func (s *SlotCacheService) Stop() {
	if s.stopped.CompareAndSwap(false, true) {
		close(s.stopChan)
		s.wg.Wait()
		s.log.Info("SlotCacheService stopped")
	}
}

// GetActiveRules returns the current capacity rules, reloading from the
// database when the snapshot is missing or stale.
func (s *SlotCacheService) GetActiveRules(ctx context.Context) ([]scheduling.Rule, error) {
	s.mu.RLock()
	if s.valid && time.Since(s.loadedAt) < slotCacheTTL {
		rules := s.rules
		s.mu.RUnlock()
		return rules, nil
	}
	s.mu.RUnlock()

	return s.reload(ctx)
}

// Invalidate drops the local snapshot and publishes the invalidation so
// other instances drop theirs too. Publish failures are logged but not
// returned, the TTL reload covers instances that miss the message.
func (s *SlotCacheService) Invalidate(ctx context.Context) {
	s.dropSnapshot()

	if err := s.redisClient.Publish(ctx, slotCacheChannel, "invalidate").Err(); err != nil {
		s.log.Warnf("Failed to publish slot cache invalidation: %+v", err)
	}
}

func (s *SlotCacheService) reload(ctx context.Context) ([]scheduling.Rule, error) {
	slots, err := s.slotRepo.FindActive(s.db.WithContext(ctx))
	if err != nil {
		s.log.Warnf("Failed to load capacity slots: %+v", err)
		return nil, err
	}

	rules := make([]scheduling.Rule, 0, len(slots))
	for _, slot := range slots {
		rule, err := toRule(slot)
		if err != nil {
			s.log.Warnf("Skipping malformed capacity slot %d: %+v", slot.ID, err)
			continue
		}
		rules = append(rules, rule)
	}

	s.mu.Lock()
	s.rules = rules
	s.loadedAt = time.Now()
	s.valid = true
	s.mu.Unlock()

	s.log.Debugf("Reloaded %d capacity rules", len(rules))
	return rules, nil
}

func (s *SlotCacheService) dropSnapshot() {
	s.mu.Lock()
	s.valid = false
	s.rules = nil
	s.mu.Unlock()
}

func (s *SlotCacheService) subscribeLoop() {
	defer s.wg.Done()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sub := s.redisClient.Subscribe(ctx, slotCacheChannel)
	defer sub.Close()

	ch := sub.Channel()

	for {
		select {
		case <-s.stopChan:
			s.log.Debug("Slot cache subscriber stopping")
			return
		case msg, ok := <-ch:
			if !ok {
				s.log.Warn("Slot cache subscription closed")
				return
			}
			s.log.Debugf("Slot cache invalidation received: %s", msg.Payload)
			s.dropSnapshot()
		}
	}
}

func toRule(slot entity.CapacitySlot) (scheduling.Rule, error) {
	startMinute, err := scheduling.ParseClock(slot.StartTime)
	if err != nil {
		return scheduling.Rule{}, err
	}
	endMinute, err := scheduling.ParseClock(slot.EndTime)
	if err != nil {
		return scheduling.Rule{}, err
	}
	return scheduling.Rule{
		ID:          slot.ID,
		StartMinute: startMinute,
		EndMinute:   endMinute,
		Day:         slot.DayOfWeek,
		MaxCapacity: slot.MaxCapacity,
	}, nil
}
