package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/rs/zerolog/log"
	"gopkg.in/gomail.v2"

	"github.com/varejo/pos-service/config"
	"github.com/varejo/pos-service/internal/domain/model"
	"github.com/varejo/pos-service/internal/repository"
)

// ClosingService computes and persists the end-of-day sales summary.
type ClosingService interface {
	Run(ctx context.Context, day time.Time) (*model.DailyClosing, error)
	List(ctx context.Context, limit int64) ([]*model.DailyClosing, error)
	Start() error
	Stop()
}

// ClosingServiceImpl implements ClosingService. A gocron scheduler
// triggers Run once per day at the configured time; Run can also be
// invoked manually through the API.
type ClosingServiceImpl struct {
	cfg       config.ClosingConfig
	repo      repository.ClosingRepositoryInterface
	saleRepo  repository.SaleRepositoryInterface
	scheduler *gocron.Scheduler
}

// NewClosingService creates a new closing service.
func NewClosingService(cfg config.ClosingConfig, repo repository.ClosingRepositoryInterface, saleRepo repository.SaleRepositoryInterface) *ClosingServiceImpl {
	return &ClosingServiceImpl{
		cfg:      cfg,
		repo:     repo,
		saleRepo: saleRepo,
	}
}

// Start schedules the daily job. It is a no-op when closing is disabled.
func (s *ClosingServiceImpl) Start() error {
	if !s.cfg.Enabled {
		return nil
	}

	s.scheduler = gocron.NewScheduler(time.Local)
	_, err := s.scheduler.Every(1).Day().At(s.cfg.Time).Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		closing, err := s.Run(ctx, time.Now())
		if err != nil {
			log.Error().Err(err).Msg("daily closing failed")
			return
		}
		log.Info().
			Str("date", closing.Date).
			Int64("sales", closing.SaleCount).
			Float64("amount", closing.Amount).
			Msg("daily closing completed")
	})
	if err != nil {
		return fmt.Errorf("schedule daily closing: %w", err)
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop halts the scheduler.
func (s *ClosingServiceImpl) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

// Run aggregates the given calendar day's completed sales, upserts the
// closing document, and emails the summary when SMTP is configured.
// Re-running the same day replaces the earlier closing.
func (s *ClosingServiceImpl) Run(ctx context.Context, day time.Time) (*model.DailyClosing, error) {
	if s.repo == nil || s.saleRepo == nil {
		return nil, ErrRepositoryNotConfigured
	}

	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.Local)
	to := from.AddDate(0, 0, 1).Add(-time.Nanosecond)

	summary, err := s.saleRepo.Summary(ctx, repository.SaleFilter{From: &from, To: &to})
	if err != nil {
		return nil, fmt.Errorf("aggregate sales: %w", err)
	}
	sellers, err := s.saleRepo.SellerTotals(ctx, repository.SaleFilter{From: &from, To: &to})
	if err != nil {
		return nil, fmt.Errorf("aggregate seller totals: %w", err)
	}

	closing := &model.DailyClosing{
		Date:      from.Format("2006-01-02"),
		SaleCount: summary.SaleCount,
		ItemsSold: summary.ItemsSold,
		Amount:    summary.Amount,
		BySellers: sellers,
	}

	if s.cfg.SMTPHost != "" && s.cfg.EmailTo != "" {
		if err := s.email(closing); err != nil {
			// The closing itself must still be persisted.
			log.Warn().Err(err).Str("date", closing.Date).Msg("closing email failed")
		} else {
			closing.EmailedTo = s.cfg.EmailTo
		}
	}

	if err := s.repo.Upsert(ctx, closing); err != nil {
		return nil, fmt.Errorf("store closing: %w", err)
	}
	return closing, nil
}

// List returns recent closings.
func (s *ClosingServiceImpl) List(ctx context.Context, limit int64) ([]*model.DailyClosing, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	if limit <= 0 || limit > 365 {
		limit = 31
	}
	return s.repo.List(ctx, limit)
}

// email sends the closing summary over SMTP.
func (s *ClosingServiceImpl) email(closing *model.DailyClosing) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Fechamento do dia %s\n\n", closing.Date)
	fmt.Fprintf(&b, "Vendas: %d\n", closing.SaleCount)
	fmt.Fprintf(&b, "Itens vendidos: %d\n", closing.ItemsSold)
	fmt.Fprintf(&b, "Valor total: %.2f\n\n", closing.Amount)
	for _, seller := range closing.BySellers {
		fmt.Fprintf(&b, "  %s: %d vendas, %.2f\n", seller.SellerName, seller.SaleCount, seller.Amount)
	}

	from := s.cfg.EmailFrom
	if from == "" {
		from = s.cfg.SMTPUser
	}

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", s.cfg.EmailTo)
	m.SetHeader("Subject", fmt.Sprintf("Fechamento diário %s", closing.Date))
	m.SetBody("text/plain", b.String())

	d := gomail.NewDialer(s.cfg.SMTPHost, s.cfg.SMTPPort, s.cfg.SMTPUser, s.cfg.SMTPPass)
	return d.DialAndSend(m)
}
