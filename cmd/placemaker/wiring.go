package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"placemaker/internal/audit"
	hmismetrics "placemaker/internal/hmis/metrics"
	"placemaker/internal/hmis/service"
	"placemaker/internal/hmis/store/entity"
	"placemaker/internal/hmis/store/household"
	"placemaker/internal/hmis/store/person"
	"placemaker/internal/hmis/store/ssnindex"
	"placemaker/internal/hmis/validation"
	"placemaker/internal/platform/config"
	"placemaker/internal/platform/postgres"
	"placemaker/internal/platform/redis"
)

const auditQueueSize = 256

type app struct {
	log         *slog.Logger
	service     *service.Service
	auditStore  *audit.InMemoryStore
	auditQueue  *audit.Queue
	auditWorker *audit.Worker
	db          *sql.DB
	redis       *redis.Client
}

// build wires stores, the SSN index and the audit worker from cfg.
func build(ctx context.Context, cfg config.Config, log *slog.Logger, reg prometheus.Registerer) (*app, error) {
	a := &app{log: log}

	var (
		persons    service.PersonStore
		households service.HouseholdStore
		entities   service.EntityStore
	)
	switch cfg.Store.Backend {
	case config.BackendPostgres:
		db, err := postgres.Open(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		a.db = db
		var schema []string
		schema = append(schema, person.Schema()...)
		schema = append(schema, household.Schema()...)
		schema = append(schema, entity.Schema()...)
		if err := postgres.Migrate(ctx, db, schema...); err != nil {
			a.close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
		persons = person.NewPostgres(db)
		households = household.NewPostgres(db)
		entities = entity.NewPostgres(db)
		log.Info("using postgres store")
	default:
		persons = person.NewInMemory()
		households = household.NewInMemory()
		entities = entity.NewInMemory()
		log.Info("using in-memory store")
	}

	rc, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		a.close()
		return nil, err
	}
	var index service.SSNIndex = ssnindex.NewInMemory()
	if rc != nil {
		a.redis = rc
		index = ssnindex.NewRedis(rc.Client)
		log.Info("using redis SSN index")
	}

	a.auditStore = audit.NewInMemoryStore()
	a.auditQueue = audit.NewQueue(auditQueueSize)
	a.auditWorker = audit.NewWorker(a.auditStore, a.auditQueue.Events())

	svc, err := service.New(persons, households, entities,
		service.WithLogger(log),
		service.WithMetrics(hmismetrics.New(reg)),
		service.WithAuditPublisher(a.auditQueue),
		service.WithSSNIndex(index),
		service.WithValidator(validation.New(
			validation.WithDisabilitySpecifyRule(cfg.Validation.EnforceDisabilitySpecify),
			validation.WithResidenceSubtypeRule(cfg.Validation.EnforceResidenceSubtype),
		)),
	)
	if err != nil {
		a.close()
		return nil, err
	}
	a.service = svc
	return a, nil
}

// process runs the audit worker next to the intake loop. Closing the queue
// when intake returns lets the worker drain and exit.
func (a *app) process(ctx context.Context, in io.Reader, out io.Writer) (summary, error) {
	var sum summary
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return a.auditWorker.Run(gctx)
	})
	g.Go(func() error {
		defer a.auditQueue.Close()
		var err error
		sum, err = a.intake(gctx, in, out)
		return err
	})
	err := g.Wait()
	return sum, err
}

func (a *app) auditCount(ctx context.Context) int {
	events, err := a.auditStore.ListAll(ctx)
	if err != nil {
		return 0
	}
	return len(events)
}

func (a *app) close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.log.Warn("close redis", "error", err)
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.log.Warn("close database", "error", err)
		}
	}
}
