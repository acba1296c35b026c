package setup

import (
	"time"

	"github.com/itchan-dev/kvboard/backend/internal/handler"
	"github.com/itchan-dev/kvboard/backend/internal/service"
	"github.com/itchan-dev/kvboard/backend/internal/storage/collection"
	"github.com/itchan-dev/kvboard/backend/internal/storage/kv"
	"github.com/itchan-dev/kvboard/backend/internal/utils"
	"github.com/itchan-dev/kvboard/shared/config"
	"github.com/itchan-dev/kvboard/shared/domain"
	"github.com/itchan-dev/kvboard/shared/logger"
	"github.com/itchan-dev/kvboard/shared/middleware/ratelimiter"
)

// idle clients are forgotten by the create limiter after this long
const limiterExpiration = time.Hour

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Storage       *kv.Storage
	Handler       *handler.Handler
	Config        *config.Config
	CreateLimiter *ratelimiter.Limiter // nil when create requests are not limited
}

// SetupDependencies connects to the list store and builds everything on top of it.
func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	storage, err := kv.New(cfg)
	if err != nil {
		return nil, err
	}

	deps, err := Build(storage, cfg)
	if err != nil {
		storage.Cleanup()
		return nil, err
	}
	return deps, nil
}

// Build wires services and handlers on top of an already connected storage.
func Build(storage *kv.Storage, cfg *config.Config) (*Dependencies, error) {
	var opts []collection.Option
	if cfg.Public.Store.SerializeWrites {
		opts = append(opts, collection.WithLocker(storage))
		logger.Log.Info("list writes are serialized with a distributed lock")
	}
	threads := collection.New[domain.Thread](storage, cfg.Public.Store.ThreadsKey, opts...)
	replies := collection.New[domain.Reply](storage, cfg.Public.Store.RepliesKey, opts...)

	ids, err := service.NewIdGenerator(cfg.Public.Board.IdStrategy)
	if err != nil {
		return nil, err
	}

	var sanitizer service.TextSanitizer
	if cfg.Public.Board.SanitizeHTML {
		sanitizer = utils.NewHTMLSanitizer()
	}

	validator := utils.NewTextValidator(cfg.Public.Board.MaxTitleLen, cfg.Public.Board.MaxContentLen)
	thread := service.NewThread(threads, validator, ids, sanitizer, cfg.Public.Board)
	reply := service.NewReply(replies, validator, ids, sanitizer, cfg.Public.Board)

	var limiter *ratelimiter.Limiter
	if rl := cfg.Public.RateLimit; rl.CreateRPS > 0 {
		limiter = ratelimiter.New(rl.CreateRPS, max(rl.CreateBurst, 1), limiterExpiration)
	}

	return &Dependencies{
		Storage:       storage,
		Handler:       handler.New(thread, reply, storage, cfg),
		Config:        cfg,
		CreateLimiter: limiter,
	}, nil
}

// Close releases what SetupDependencies acquired.
func (d *Dependencies) Close() {
	if d.CreateLimiter != nil {
		d.CreateLimiter.Stop()
	}
	if err := d.Storage.Cleanup(); err != nil {
		logger.Log.Warn("failed to close list store client", "error", err)
	}
}
