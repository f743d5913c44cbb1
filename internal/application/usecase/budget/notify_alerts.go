package budget

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/finsight/backend/internal/application/adapter"
	"github.com/finsight/backend/internal/domain/entity"
)

// alertKey identifies one notification: a budget, the period window it fired
// in, and which condition fired. One email per key.
type alertKey struct {
	budgetID    uuid.UUID
	periodStart time.Time
	alertType   AlertType
}

// NotifyAlertsUseCase scans active budgets with notifications enabled and
// enqueues an alert email for each newly triggered condition. Conditions
// already notified within the same period window are skipped, so a budget
// generates at most one email per condition per period.
type NotifyAlertsUseCase struct {
	budgetRepo adapter.BudgetRepository
	userRepo   adapter.UserRepository
	emailQueue adapter.EmailQueueRepository
	calculator *ProgressCalculator

	mu       sync.Mutex
	notified map[alertKey]struct{}
}

// NewNotifyAlertsUseCase creates a new NotifyAlertsUseCase instance.
func NewNotifyAlertsUseCase(
	budgetRepo adapter.BudgetRepository,
	userRepo adapter.UserRepository,
	emailQueue adapter.EmailQueueRepository,
	calculator *ProgressCalculator,
) *NotifyAlertsUseCase {
	return &NotifyAlertsUseCase{
		budgetRepo: budgetRepo,
		userRepo:   userRepo,
		emailQueue: emailQueue,
		calculator: calculator,
		notified:   make(map[alertKey]struct{}),
	}
}

// Execute runs one notification scan.
func (uc *NotifyAlertsUseCase) Execute(ctx context.Context) error {
	items, err := uc.budgetRepo.FindActiveWithNotifications(ctx)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	enqueued := 0

	for _, item := range items {
		progress, err := uc.calculator.Calculate(ctx, item, now)
		if err != nil {
			slog.Error("budget progress calculation failed",
				"budget_id", item.Budget.ID, "error", err)
			continue
		}

		alert := AlertFor(progress)
		if alert == nil {
			continue
		}

		key := alertKey{
			budgetID:    item.Budget.ID,
			periodStart: progress.PeriodStart,
			alertType:   alert.Type,
		}
		if uc.alreadyNotified(key) {
			continue
		}

		user, err := uc.userRepo.FindByID(ctx, item.Budget.UserID)
		if err != nil {
			slog.Error("user lookup failed for budget alert",
				"user_id", item.Budget.UserID, "error", err)
			continue
		}

		if err := uc.enqueueAlert(ctx, user, alert); err != nil {
			slog.Error("failed to enqueue budget alert email",
				"budget_id", item.Budget.ID, "error", err)
			continue
		}

		uc.markNotified(key)
		enqueued++
	}

	if enqueued > 0 {
		slog.Info("budget alert emails enqueued", "count", enqueued)
	}

	return nil
}

func (uc *NotifyAlertsUseCase) enqueueAlert(ctx context.Context, user *entity.User, alert *BudgetAlert) error {
	categoryName := ""
	if alert.Progress.Category != nil {
		categoryName = alert.Progress.Category.Name
	}

	subject := fmt.Sprintf("Budget alert: %s", categoryName)
	if alert.Type == AlertTypeOverBudget {
		subject = fmt.Sprintf("Budget exceeded: %s", categoryName)
	}

	job := entity.NewEmailJob(entity.TemplateBudgetAlert, user.Email, user.Name, subject, map[string]interface{}{
		"user_name":     user.Name,
		"category_name": categoryName,
		"alert_type":    string(alert.Type),
		"message":       alert.Message,
		"spent":         alert.Progress.Spent.StringFixed(2),
		"limit":         alert.Progress.Budget.Amount.StringFixed(2),
		"percentage":    fmt.Sprintf("%.0f", alert.Progress.Percentage),
		"period":        string(alert.Progress.Budget.Period),
	})

	return uc.emailQueue.Enqueue(ctx, job)
}

func (uc *NotifyAlertsUseCase) alreadyNotified(key alertKey) bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	_, ok := uc.notified[key]
	return ok
}

func (uc *NotifyAlertsUseCase) markNotified(key alertKey) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	// Keys from past periods never fire again; drop them once the map
	// grows noticeably.
	if len(uc.notified) > 4096 {
		now := time.Now().UTC()
		for k := range uc.notified {
			if now.Sub(k.periodStart) > 400*24*time.Hour {
				delete(uc.notified, k)
			}
		}
	}

	uc.notified[key] = struct{}{}
}
