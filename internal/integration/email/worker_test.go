package email

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/finsight/backend/internal/application/adapter"
	"github.com/finsight/backend/internal/domain/entity"
	domainerror "github.com/finsight/backend/internal/domain/error"
	"github.com/finsight/backend/internal/integration/email/templates"
)

type fakeQueue struct {
	jobs []*entity.EmailJob
}

func (q *fakeQueue) Enqueue(ctx context.Context, job *entity.EmailJob) error {
	q.jobs = append(q.jobs, job)
	return nil
}

func (q *fakeQueue) GetPendingJobs(ctx context.Context, limit int) ([]*entity.EmailJob, error) {
	now := time.Now().UTC()
	var due []*entity.EmailJob
	for _, job := range q.jobs {
		if job.Status == entity.EmailStatusPending && !job.ScheduledAt.After(now) {
			due = append(due, job)
			if len(due) == limit {
				break
			}
		}
	}
	return due, nil
}

func (q *fakeQueue) Update(ctx context.Context, job *entity.EmailJob) error {
	return nil
}

type fakeSender struct {
	sent     []adapter.SendEmailInput
	failWith error
}

func (s *fakeSender) Send(ctx context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	s.sent = append(s.sent, input)
	return &adapter.SendEmailResult{ProviderID: "prov-1"}, nil
}

func newTestWorker(t *testing.T, queue *fakeQueue, sender *fakeSender) *Worker {
	t.Helper()
	renderer, err := templates.NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	return NewWorker(queue, sender, renderer, DefaultWorkerConfig())
}

func budgetAlertJob() *entity.EmailJob {
	return entity.NewEmailJob(entity.TemplateBudgetAlert, "user@example.com", "Ana", "Budget exceeded: Groceries", map[string]interface{}{
		"user_name":     "Ana",
		"category_name": "Groceries",
		"alert_type":    "over_budget",
		"message":       "You spent 520.00 of your 500.00 Groceries budget.",
		"spent":         "520.00",
		"limit":         "500.00",
		"percentage":    "104",
		"period":        "monthly",
	})
}

func TestWorkerSendsBudgetAlert(t *testing.T) {
	queue := &fakeQueue{jobs: []*entity.EmailJob{budgetAlertJob()}}
	sender := &fakeSender{}
	worker := newTestWorker(t, queue, sender)

	worker.ProcessNow(context.Background())

	if len(sender.sent) != 1 {
		t.Fatalf("sent = %d, want 1", len(sender.sent))
	}
	sent := sender.sent[0]
	if sent.To != "user@example.com" {
		t.Errorf("To = %q", sent.To)
	}
	if !strings.Contains(sent.HTML, "Groceries") || !strings.Contains(sent.HTML, "520.00") {
		t.Errorf("HTML body missing alert details")
	}
	if !strings.Contains(sent.Text, "104% of the monthly budget") {
		t.Errorf("text body missing usage line: %q", sent.Text)
	}

	job := queue.jobs[0]
	if job.Status != entity.EmailStatusSent {
		t.Errorf("status = %s, want sent", job.Status)
	}
	if job.ProviderID != "prov-1" {
		t.Errorf("provider id = %q", job.ProviderID)
	}
}

func TestWorkerRetriesTemporaryFailure(t *testing.T) {
	queue := &fakeQueue{jobs: []*entity.EmailJob{budgetAlertJob()}}
	sender := &fakeSender{failWith: domainerror.NewEmailError(
		domainerror.ErrCodeTemporaryEmailFailure, "temporary email failure", errors.New("503"),
	)}
	worker := newTestWorker(t, queue, sender)

	worker.ProcessNow(context.Background())

	job := queue.jobs[0]
	if job.Status != entity.EmailStatusPending {
		t.Fatalf("status = %s, want pending for retry", job.Status)
	}
	if job.Attempts != 1 {
		t.Errorf("attempts = %d, want 1", job.Attempts)
	}
	if !job.ScheduledAt.After(time.Now().UTC()) {
		t.Errorf("retry not scheduled in the future")
	}

	// A job rescheduled for later is not due, so the next batch skips it.
	worker.ProcessNow(context.Background())
	if job.Attempts != 1 {
		t.Errorf("attempts = %d after second batch, want 1", job.Attempts)
	}
}

func TestWorkerFinalizesPermanentFailure(t *testing.T) {
	queue := &fakeQueue{jobs: []*entity.EmailJob{budgetAlertJob()}}
	sender := &fakeSender{failWith: domainerror.NewEmailError(
		domainerror.ErrCodePermanentEmailFailure, "permanent email failure", errors.New("422 validation"),
	)}
	worker := newTestWorker(t, queue, sender)

	worker.ProcessNow(context.Background())

	job := queue.jobs[0]
	if job.Status != entity.EmailStatusFailed {
		t.Fatalf("status = %s, want failed", job.Status)
	}
	if job.ProcessedAt == nil {
		t.Errorf("processed_at not set")
	}
}

func TestWorkerFailsUnknownTemplate(t *testing.T) {
	job := entity.NewEmailJob("password_reset", "user@example.com", "Ana", "Reset", nil)
	queue := &fakeQueue{jobs: []*entity.EmailJob{job}}
	sender := &fakeSender{}
	worker := newTestWorker(t, queue, sender)

	worker.ProcessNow(context.Background())

	if len(sender.sent) != 0 {
		t.Fatalf("sent = %d, want 0", len(sender.sent))
	}
	if job.Status != entity.EmailStatusFailed {
		t.Errorf("status = %s, want failed", job.Status)
	}
}

func TestIsPermanentError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"unauthorized", errors.New("401 unauthorized"), true},
		{"validation", errors.New("422: validation_error"), true},
		{"rate limit", errors.New("429 too many requests"), false},
		{"server error", errors.New("500 internal server error"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isPermanentError(tt.err); got != tt.want {
				t.Errorf("isPermanentError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
