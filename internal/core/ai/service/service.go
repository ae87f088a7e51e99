package service

import (
	"context"
	"errors"
	"time"

	"recipe-manager/internal/core/ai/cache"
	"recipe-manager/internal/core/ai/provider"
	"recipe-manager/internal/infrastructure/monitoring"
	"recipe-manager/internal/pkg/common"

	"go.uber.org/zap"
)

// ErrDisabled no provider configured
var ErrDisabled = errors.New("AI service is not configured")

// Service sends prompts to the provider under a per-call deadline
type Service struct {
	provider provider.Provider
	cache    *cache.Service
	metrics  *monitoring.Metrics
}

// NewService creates the AI service; cache and metrics may be nil
func NewService(p provider.Provider, c *cache.Service, m *monitoring.Metrics) *Service {
	return &Service{
		provider: p,
		cache:    c,
		metrics:  m,
	}
}

// ProcessRequest returns the model's text for prompt. Purpose labels logs and metrics.
func (s *Service) ProcessRequest(ctx context.Context, purpose, system, prompt string) (string, error) {
	if s == nil || s.provider == nil {
		return "", ErrDisabled
	}

	start := time.Now()
	model := s.provider.GetModel()

	if s.cache.Enabled() {
		if resp, err := s.cache.Get(ctx, model, system, prompt); err == nil {
			s.metrics.AIRequest(purpose, "cache", time.Since(start))
			common.LogDebug("AI response served from cache", zap.String("purpose", purpose))
			return resp.Content, nil
		} else if !errors.Is(err, cache.ErrCacheMiss) {
			common.LogWarn("AI cache lookup failed", zap.String("purpose", purpose), zap.Error(err))
		}
	}

	callCtx := ctx
	if timeout := s.provider.GetTimeout(); timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	resp, err := s.provider.Generate(callCtx, provider.NewRequest(system, prompt, 0))
	duration := time.Since(start)
	common.LogAICall(purpose, duration, err)
	if err != nil {
		status := "error"
		if common.IsTimeout(err) || errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			status = "timeout"
			if !common.IsTimeout(err) {
				err = errors.Join(err, context.DeadlineExceeded)
			}
		}
		s.metrics.AIRequest(purpose, status, duration)
		return "", err
	}
	s.metrics.AIRequest(purpose, "success", duration)

	if s.cache.Enabled() {
		if err := s.cache.Set(ctx, model, system, prompt, resp); err != nil {
			common.LogWarn("AI cache store failed", zap.String("purpose", purpose), zap.Error(err))
		}
	}

	return resp.Content, nil
}

// Close releases the provider and cache connections
func (s *Service) Close() error {
	if s == nil {
		return nil
	}
	var errs []error
	if s.provider != nil {
		errs = append(errs, s.provider.Close())
	}
	errs = append(errs, s.cache.Close())
	return errors.Join(errs...)
}
