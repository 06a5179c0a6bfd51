package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/clearlist-hq/clearlist-verifier/internal/domain"
	"github.com/clearlist-hq/clearlist-verifier/internal/logger"
	"github.com/clearlist-hq/clearlist-verifier/internal/storage"
	"github.com/clearlist-hq/clearlist-verifier/pkg/maillist"
	"github.com/clearlist-hq/clearlist-verifier/pkg/sinks"
	"github.com/clearlist-hq/clearlist-verifier/pkg/validation"
)

// Validator is the subset of the validation client the pipeline needs.
type Validator interface {
	ValidateEmail(ctx context.Context, emailAddress string) (validation.Result[validation.SingleValidationRecord], error)
	CheckDisposable(ctx context.Context, emailAddress string) (validation.Result[validation.DisposableEmailRecord], error)
	CheckFreeEmail(ctx context.Context, emailAddress string) (validation.Result[validation.FreeEmailRecord], error)
}

// Service runs cleaning passes over mailing lists: it resolves each address
// through the validation client, caches successful verdicts, and fans the
// verdicts out to the configured sinks.
type Service struct {
	validator Validator
	fanout    *sinks.Fanout
	store     storage.Store
	log       logger.Logger
}

// listStats summarizes one cleaning pass over a list.
type listStats struct {
	Addresses       int `json:"addresses"`
	CacheHits       int `json:"cache_hits"`
	Checked         int `json:"checked"`
	Published       int `json:"published"`
	Rejections      int `json:"rejections"`
	EmptyResults    int `json:"empty_results"`
	TransportErrors int `json:"transport_errors"`
	PublishFailures int `json:"publish_failures"`
}

// NewService wires a pipeline with the validation client, sinks, and cache.
func NewService(v Validator, fanout *sinks.Fanout, log logger.Logger, store storage.Store) *Service {
	if log == nil {
		log = &logger.NopLogger{}
	}
	if store == nil {
		store, _ = storage.NewStore("none", "", storage.Options{})
	}
	return &Service{
		validator: v,
		fanout:    fanout,
		store:     store,
		log:       log,
	}
}

// Run executes a cleaning pass for all configured lists.
func (s *Service) Run(ctx context.Context, lists []maillist.List) error {
	if s == nil || s.validator == nil {
		return fmt.Errorf("pipeline service is not initialized")
	}

	if len(lists) == 0 {
		return fmt.Errorf("no lists configured for cleaning")
	}

	errs := make([]error, 0, len(lists))
	for _, l := range lists {
		if err := s.runList(ctx, l); err != nil {
			errs = append(errs, err)
			s.log.ErrorObj("list cleaning failed", "list_error", map[string]any{
				"list_id": l.ID,
				"error":   err.Error(),
			})
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// runList cleans a single list. Transport errors on individual addresses are
// counted and logged but do not abort the list.
func (s *Service) runList(ctx context.Context, l maillist.List) error {
	addresses, err := maillist.ReadAddresses(l.SourceFile)
	if err != nil {
		return fmt.Errorf("read list %s: %w", l.ID, err)
	}

	stats := listStats{Addresses: len(addresses)}
	delay := l.RequestDelay()
	calledAPI := false

	for _, addr := range addresses {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("list %s interrupted: %w", l.ID, err)
		}

		key := l.Operation + ":" + addr
		if _, found, err := s.store.GetVerdict(key); err != nil {
			s.log.WarnObj("verdict cache lookup failed", "cache_error", map[string]any{
				"list_id": l.ID,
				"key":     key,
				"error":   err.Error(),
			})
		} else if found {
			stats.CacheHits++
			continue
		}

		// Throttle between API calls only; cache hits cost nothing remote.
		if calledAPI {
			if err := sleepCtx(ctx, delay); err != nil {
				return fmt.Errorf("list %s interrupted: %w", l.ID, err)
			}
		}

		verdict, err := s.check(ctx, l.Operation, addr)
		calledAPI = true
		if err != nil {
			stats.TransportErrors++
			s.log.ErrorObj("validation call failed", "check_error", map[string]any{
				"list_id":       l.ID,
				"email_address": addr,
				"error":         err.Error(),
			})
			continue
		}
		stats.Checked++

		switch {
		case verdict.OK():
			payload, err := json.Marshal(verdict)
			if err != nil {
				return fmt.Errorf("marshal verdict for %s: %w", addr, err)
			}
			if err := s.store.PutVerdict(verdict.CacheKey(), payload); err != nil {
				s.log.WarnObj("verdict cache store failed", "cache_error", map[string]any{
					"list_id": l.ID,
					"key":     key,
					"error":   err.Error(),
				})
			}
		case verdict.Error != nil:
			stats.Rejections++
		default:
			// Unclassified API status; already logged by the client. Nothing
			// worth caching or publishing.
			stats.EmptyResults++
			continue
		}

		if count, err := s.fanout.Publish(ctx, sinks.NewEvent(l.ID, l.Name, verdict)); err != nil {
			stats.PublishFailures++
			s.log.ErrorObj("verdict publish failed", "publish_error", map[string]any{
				"list_id":       l.ID,
				"email_address": addr,
				"delivered":     count,
				"error":         err.Error(),
			})
		} else {
			stats.Published++
		}
	}

	s.log.InfoObj("list cleaning completed", "list_result", map[string]any{
		"list_id":   l.ID,
		"operation": l.Operation,
		"stats":     stats,
	})
	return nil
}

// check dispatches to the operation configured for the list and normalizes
// the typed result into a verdict.
func (s *Service) check(ctx context.Context, operation, emailAddress string) (domain.Verdict, error) {
	switch operation {
	case domain.OpValidate:
		res, err := s.validator.ValidateEmail(ctx, emailAddress)
		if err != nil {
			return domain.Verdict{}, err
		}
		return verdictFrom(operation, emailAddress, res)
	case domain.OpDisposable:
		res, err := s.validator.CheckDisposable(ctx, emailAddress)
		if err != nil {
			return domain.Verdict{}, err
		}
		return verdictFrom(operation, emailAddress, res)
	case domain.OpFree:
		res, err := s.validator.CheckFreeEmail(ctx, emailAddress)
		if err != nil {
			return domain.Verdict{}, err
		}
		return verdictFrom(operation, emailAddress, res)
	default:
		return domain.Verdict{}, fmt.Errorf("unsupported operation %q", operation)
	}
}

// verdictFrom converts a typed client result into the serializable verdict.
func verdictFrom[R validation.Record](operation, emailAddress string, res validation.Result[R]) (domain.Verdict, error) {
	v := domain.Verdict{
		Operation:    operation,
		EmailAddress: emailAddress,
		StatusCode:   res.StatusCode,
	}
	if res.Record != nil {
		raw, err := json.Marshal(res.Record)
		if err != nil {
			return domain.Verdict{}, fmt.Errorf("marshal record: %w", err)
		}
		v.Record = raw
	}
	if res.APIError != nil {
		v.Error = &domain.ServiceError{
			ErrorCode:    res.APIError.ErrorCode,
			ErrorMessage: res.APIError.ErrorMessage,
		}
	}
	return v, nil
}

// sleepCtx waits for d or until the context is cancelled.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
