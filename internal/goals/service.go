package goals

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/2beens/fittrack/internal/access"
	"github.com/2beens/fittrack/internal/telemetry/metrics"
	"github.com/2beens/fittrack/internal/telemetry/tracing"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=goals_test

const cacheKeyPrefix = "goals::"

type goalsRepo interface {
	Get(ctx context.Context, userID string) (*UserGoals, error)
	Upsert(ctx context.Context, userID string, patch Patch, weeklyGoalOnCreate int, updatedAt time.Time) (*UserGoals, error)
}

type Service struct {
	repo            goalsRepo
	cache           *freecache.Cache
	cacheTTLSeconds int
	metrics         *metrics.Manager
	NowFunc         func() time.Time

	// cacheMu guards cacheGen; every goals write bumps cacheGen, and a read
	// result is cached only if no write happened while it was being read
	cacheMu  sync.Mutex
	cacheGen uint64
}

// NewService takes an optional cache; reads go straight to the repo when it is nil.
func NewService(
	repo goalsRepo,
	cache *freecache.Cache,
	cacheTTL time.Duration,
	metrics *metrics.Manager,
) *Service {
	return &Service{
		repo:            repo,
		cache:           cache,
		cacheTTLSeconds: int(cacheTTL.Seconds()),
		metrics:         metrics,
		NowFunc:         time.Now,
	}
}

// Get returns the caller's goals, or nil when none were set yet.
// No defaults are filled in here.
func (s *Service) Get(ctx context.Context, userID string) (_ *UserGoals, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.goals.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := access.RequireUser(userID); err != nil {
		return nil, err
	}

	if g, found := s.fromCache(userID); found {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return g, nil
	}

	readGen := s.generation()
	g, err := s.repo.Get(ctx, userID)
	if errors.Is(err, ErrGoalsNotFound) {
		g, err = nil, nil
	}
	if err != nil {
		return nil, err
	}

	s.toCacheIfUnchanged(userID, g, readGen)
	return g, nil
}

// SetWeeklyGoal sets only the weekly activity goal, creating the record if needed.
func (s *Service) SetWeeklyGoal(ctx context.Context, userID string, weeklyGoal int) (_ *UserGoals, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.goals.set-weekly")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("weekly_goal", weeklyGoal))

	if err := access.RequireUser(userID); err != nil {
		return nil, err
	}
	if err := validateWeeklyGoal(weeklyGoal); err != nil {
		return nil, err
	}

	return s.upsert(ctx, userID, Patch{WeeklyActivityGoal: &weeklyGoal})
}

// SetGoals sets any of the three goals; omitted fields keep their value.
// A record created here without a weekly goal gets DefaultWeeklyActivityGoal.
func (s *Service) SetGoals(ctx context.Context, userID string, patch Patch) (_ *UserGoals, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.goals.set")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := access.RequireUser(userID); err != nil {
		return nil, err
	}
	if err := patch.validate(); err != nil {
		return nil, err
	}

	return s.upsert(ctx, userID, patch)
}

func (s *Service) upsert(ctx context.Context, userID string, patch Patch) (*UserGoals, error) {
	s.invalidate(userID)
	g, err := s.repo.Upsert(ctx, userID, patch, DefaultWeeklyActivityGoal, s.NowFunc())
	// reads racing with the write may have picked up the old row
	s.invalidate(userID)
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.CounterGoalsUpserts.Inc()
	}
	log.Debugf("goals %d of %s set, weekly goal: %d", g.ID, userID, g.WeeklyActivityGoal)
	return g, nil
}

func (s *Service) fromCache(userID string) (*UserGoals, bool) {
	if s.cache == nil {
		return nil, false
	}
	cached, err := s.cache.Get([]byte(cacheKeyPrefix + userID))
	if err != nil {
		return nil, false
	}

	var g *UserGoals
	if err := json.Unmarshal(cached, &g); err != nil {
		log.Errorf("failed to unmarshal cached goals of %s: %s", userID, err)
		return nil, false
	}
	return g, true
}

// toCache also caches absence ("null"), so dashboards of users without goals skip the db.
func (s *Service) toCache(userID string, g *UserGoals) {
	if s.cache == nil {
		return
	}
	goalsJson, err := json.Marshal(g)
	if err != nil {
		log.Errorf("failed to marshal goals of %s: %s", userID, err)
		return
	}
	if err := s.cache.Set([]byte(cacheKeyPrefix+userID), goalsJson, s.cacheTTLSeconds); err != nil {
		log.Errorf("failed to cache goals of %s: %s", userID, err)
	}
}

func (s *Service) generation() uint64 {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	return s.cacheGen
}

func (s *Service) toCacheIfUnchanged(userID string, g *UserGoals, readGen uint64) {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	if s.cacheGen != readGen {
		return
	}
	s.toCache(userID, g)
}

func (s *Service) invalidate(userID string) {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	s.cacheGen++
	if s.cache == nil {
		return
	}
	s.cache.Del([]byte(cacheKeyPrefix + userID))
}
