package app

import (
	"context"
	"fmt"
	"time"

	"github.com/clearlist-hq/clearlist-verifier/internal/config"
	"github.com/clearlist-hq/clearlist-verifier/internal/logger"
	"github.com/clearlist-hq/clearlist-verifier/internal/pipeline"
	"github.com/clearlist-hq/clearlist-verifier/internal/storage"
	"github.com/clearlist-hq/clearlist-verifier/pkg/httpclient"
	"github.com/clearlist-hq/clearlist-verifier/pkg/maillist"
	"github.com/clearlist-hq/clearlist-verifier/pkg/sinks"
	"github.com/clearlist-hq/clearlist-verifier/pkg/validation"
)

// Cleaner wires together the mailing-list registry, the validation client,
// local verdict storage, and sinks, and executes one cleaning pass. It also
// handles storage initialization and cleanup.
type Cleaner struct {
	cfg     *config.Config
	listReg *maillist.Registry
	fanout  *sinks.Fanout
	service *pipeline.Service
	log     logger.Logger
	store   storage.Store
}

// NewCleaner builds a cleaner runtime from config files.
func NewCleaner(ctx context.Context, cfg *config.Config, log logger.Logger) (*Cleaner, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = &logger.NopLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	listReg, err := maillist.LoadRegistry(cfg.ListsFile)
	if err != nil {
		return nil, fmt.Errorf("load lists registry: %w", err)
	}
	lists := listReg.All()
	listIDs := make([]string, 0, len(lists))
	for _, l := range lists {
		listIDs = append(listIDs, l.ID)
	}
	log.InfoObj("lists registry loaded", "lists_meta", map[string]any{
		"count": len(listIDs),
		"ids":   listIDs,
	})

	sinkReg, err := sinks.LoadRegistry(cfg.SinksFile)
	if err != nil {
		return nil, fmt.Errorf("load sinks registry: %w", err)
	}

	enabledSinks := sinkReg.Enabled()
	if len(enabledSinks) == 0 {
		return nil, fmt.Errorf("no sinks configured")
	}

	sinkRegistry := sinks.DefaultRegistry()
	sinkClients, err := sinks.BuildAll(ctx, sinkRegistry, enabledSinks, log)
	if err != nil {
		return nil, fmt.Errorf("build sinks: %w", err)
	}
	fanout := sinks.NewFanout(sinkClients)
	sinkSummaries := make([]map[string]string, 0, len(enabledSinks))
	for _, sinkCfg := range enabledSinks {
		sinkSummaries = append(sinkSummaries, map[string]string{
			"id":   sinkCfg.ID,
			"type": sinkCfg.Type,
		})
	}
	log.InfoObj("sinks registry loaded", "sinks_meta", map[string]any{
		"count": len(sinkSummaries),
		"sinks": sinkSummaries,
	})

	storeOpts := storage.Options{
		VerdictTTL:      cfg.StorageTTL,
		CleanupInterval: cfg.StorageCleanupInterval,
	}
	store, err := storage.NewStore(cfg.StorageType, cfg.BBoltPath, storeOpts)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}
	log.InfoObj("storage initialized", "storage_config", map[string]any{
		"type":                     cfg.StorageType,
		"path":                     cfg.BBoltPath,
		"verdict_ttl_seconds":      int(cfg.StorageTTL.Seconds()),
		"cleanup_interval_seconds": int(cfg.StorageCleanupInterval.Seconds()),
	})

	clientOpts := []validation.Option{
		validation.WithHTTPClient(httpclient.NewRestyClient(cfg.RequestTimeout)),
		validation.WithLogger(log),
	}
	if cfg.APIBaseURL != "" {
		clientOpts = append(clientOpts, validation.WithBaseURL(cfg.APIBaseURL))
	}
	client := validation.New(cfg.APIKey, clientOpts...)

	service := pipeline.NewService(client, fanout, log, store)

	return &Cleaner{
		cfg:     cfg,
		listReg: listReg,
		fanout:  fanout,
		service: service,
		log:     log,
		store:   store,
	}, nil
}

// Run executes one cleaning pass over all configured lists.
func (c *Cleaner) Run(ctx context.Context) error {
	if c == nil || c.service == nil {
		return fmt.Errorf("cleaner is not initialized")
	}
	defer c.closeStore()

	lists := c.listReg.All()
	if len(lists) == 0 {
		c.log.WarnObj("no lists configured; nothing to clean", "lists_file", c.cfg.ListsFile)
		return nil
	}

	start := time.Now()
	c.log.InfoObj("cleaning started", "run_meta", map[string]any{
		"lists_count": len(lists),
		"sinks_count": c.fanout.Size(),
		"started_at":  start.UTC(),
	})

	if err := c.service.Run(ctx, lists); err != nil {
		return fmt.Errorf("cleaning run: %w", err)
	}

	c.log.InfoObj("cleaning completed", "run_meta", map[string]any{
		"lists_count": len(lists),
		"elapsed_ms":  time.Since(start).Milliseconds(),
	})
	return nil
}

// closeStore safely closes the storage backend, logging any errors encountered.
func (c *Cleaner) closeStore() {
	if c == nil || c.store == nil {
		return
	}
	if err := c.store.Close(); err != nil {
		c.log.ErrorObj("storage close failed", "error", err)
	}
}
