package invitemail

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"net/url"
	"strings"
	"time"

	"tripbudget/internal/config"
	"tripbudget/internal/model"
	"tripbudget/internal/pgmq"
	"tripbudget/internal/service"

	"github.com/rs/zerolog"
)

// Queue is the subset of the pgmq client the worker needs.
type Queue interface {
	ReadWithPoll(ctx context.Context, queue string, visibilitySec, timeoutSec, maxMessages int) ([]*pgmq.Message, error)
	Send(ctx context.Context, queue string, payload []byte) (int64, error)
	Delete(ctx context.Context, queue string, msgIDs []int64) error
	Archive(ctx context.Context, queue string, msgID int64) error
	Exec(ctx context.Context, query string, args ...any) error
}

// Options configures the invite mail worker.
type Options struct {
	Queue           string
	DeadLetterQueue string
	PollTimeoutSec  int
	PollMaxMsg      int
	MaxRetries      int
	BackoffInitial  time.Duration
	BackoffMax      time.Duration
	RequestTimeout  time.Duration
	AppBaseURL      string
}

// OptionsFromConfig maps the INVITE_* settings.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Queue:           cfg.InviteQueueName,
		DeadLetterQueue: cfg.InviteDeadLetterQueueName,
		PollTimeoutSec:  cfg.InvitePollTimeoutSec,
		PollMaxMsg:      cfg.InvitePollMaxMsg,
		MaxRetries:      cfg.InviteMaxRetries,
		BackoffInitial:  time.Duration(cfg.InviteBackoffInitialSec) * time.Second,
		BackoffMax:      time.Duration(cfg.InviteBackoffMaxSec) * time.Second,
		RequestTimeout:  time.Duration(cfg.InviteRequestTimeoutSec) * time.Second,
		AppBaseURL:      cfg.AppBaseURL,
	}
}

// Worker drains the referral invite queue and mails each referee.
type Worker struct {
	client Queue
	sender service.EmailSender
	opts   Options
	sleep  func(ctx context.Context, d time.Duration)
	logger zerolog.Logger
}

func NewWorker(client Queue, sender service.EmailSender, opts Options, logger zerolog.Logger) *Worker {
	if opts.MaxRetries < 1 {
		opts.MaxRetries = 1
	}
	if opts.PollMaxMsg < 1 {
		opts.PollMaxMsg = 1
	}
	return &Worker{
		client: client,
		sender: sender,
		opts:   opts,
		sleep:  sleepCtx,
		logger: logger.With().Str("orchestrator", "invite-mailer").Logger(),
	}
}

func sleepCtx(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

// visibilitySec keeps a message hidden long enough to cover every retry.
func (w *Worker) visibilitySec() int {
	perAttempt := w.opts.RequestTimeout + w.opts.BackoffMax
	return int((time.Duration(w.opts.MaxRetries)*perAttempt)/time.Second) + 30
}

// Run starts the invite mail orchestrator and blocks until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	w.logger.Info().Str("queue", w.opts.Queue).Msg("Starting invite mail orchestrator")
	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("Shutting down invite mail orchestrator")
			return nil
		default:
		}

		msgs, err := w.client.ReadWithPoll(ctx, w.opts.Queue, w.visibilitySec(), w.opts.PollTimeoutSec, w.opts.PollMaxMsg)
		if err != nil {
			if ctx.Err() != nil {
				continue
			}
			w.logger.Error().Err(err).Msg("Error reading invite queue")
			w.sleep(ctx, time.Second)
			continue
		}
		for _, msg := range msgs {
			w.processMessage(ctx, msg)
		}
	}
}

func (w *Worker) processMessage(ctx context.Context, msg *pgmq.Message) {
	logger := w.logger.With().Int64("msg_id", msg.ID).Int("read_ct", msg.ReadCt).Logger()

	var job model.InviteJob
	if err := json.Unmarshal(msg.Data, &job); err != nil || job.RefereeEmail == "" || job.ReferralCode == "" {
		logger.Error().Err(err).Msg("Invalid invite payload; archiving message")
		if err := w.client.Archive(ctx, w.opts.Queue, msg.ID); err != nil {
			logger.Error().Err(err).Msg("Error archiving invite message")
		}
		return
	}
	logger = logger.With().Str("referral_code", job.ReferralCode).Logger()

	sendErr := w.sendWithRetry(ctx, logger, job)
	if sendErr != nil {
		if ctx.Err() != nil {
			// Leave the message to reappear after its visibility timeout.
			return
		}
		details, _ := json.Marshal(map[string]string{"stage": "invite_mail", "message": sendErr.Error()})
		if err := w.client.Exec(ctx, "UPDATE user_referrals SET invite_error = $1::jsonb WHERE id = $2", string(details), job.ReferralID); err != nil {
			logger.Error().Err(err).Msg("Failed to record invite error")
		}
		if w.opts.DeadLetterQueue != "" {
			if _, err := w.client.Send(ctx, w.opts.DeadLetterQueue, msg.Data); err != nil {
				logger.Error().Err(err).Str("dlq", w.opts.DeadLetterQueue).Msg("Failed to send message to dead-letter queue")
			}
		}
		w.ack(ctx, logger, msg.ID)
		logger.Warn().Err(sendErr).Msg("Giving up on invite mail; moved job to DLQ")
		return
	}

	w.ack(ctx, logger, msg.ID)
	if err := w.client.Exec(ctx, "UPDATE user_referrals SET invite_sent_at = NOW(), invite_error = NULL WHERE id = $1", job.ReferralID); err != nil {
		logger.Error().Err(err).Msg("Failed to mark invite as sent")
	}
}

func (w *Worker) ack(ctx context.Context, logger zerolog.Logger, msgID int64) {
	if err := w.client.Delete(ctx, w.opts.Queue, []int64{msgID}); err != nil {
		logger.Error().Err(err).Msg("Error deleting invite message")
	}
}

// sendWithRetry retries transient failures with exponential backoff capped at BackoffMax.
func (w *Worker) sendWithRetry(ctx context.Context, logger zerolog.Logger, job model.InviteJob) error {
	email := inviteEmail(job, w.opts.AppBaseURL)
	backoff := w.opts.BackoffInitial
	var lastErr error
	for attempt := 1; attempt <= w.opts.MaxRetries; attempt++ {
		reqCtx, cancel := context.WithTimeout(ctx, w.opts.RequestTimeout)
		start := time.Now()
		messageID, err := w.sender.Send(reqCtx, email)
		cancel()
		if err == nil {
			logger.Info().Str("message_id", messageID).Dur("duration", time.Since(start)).Msg("Invite mail sent")
			return nil
		}
		lastErr = err

		var brevoErr *service.BrevoError
		if errors.As(err, &brevoErr) && !brevoErr.Retryable() {
			logger.Error().Err(err).Int("attempt", attempt).Msg("Invite mail rejected, not retrying")
			return err
		}
		if attempt == w.opts.MaxRetries || ctx.Err() != nil {
			break
		}
		logger.Error().Err(err).Int("attempt", attempt).Msg("Invite mail failed, retrying")
		w.sleep(ctx, backoff)
		backoff *= 2
		if backoff > w.opts.BackoffMax {
			backoff = w.opts.BackoffMax
		}
	}
	return fmt.Errorf("sending invite after %d attempts: %w", w.opts.MaxRetries, lastErr)
}

// InviteURL is the landing link carried in the invite mail.
func InviteURL(appBaseURL, code string) string {
	return fmt.Sprintf("%s/invite?code=%s", strings.TrimRight(appBaseURL, "/"), url.QueryEscape(code))
}

func inviteEmail(job model.InviteJob, appBaseURL string) service.Email {
	link := html.EscapeString(InviteURL(appBaseURL, job.ReferralCode))
	code := html.EscapeString(job.ReferralCode)
	body := fmt.Sprintf(`<p>You've been invited to plan your next trip with Trip Budget.</p>
<p>Sign up with code <strong>%s</strong> and you both get bonus messages.</p>
<p><a href="%s">Accept your invite</a></p>`, code, link)
	return service.Email{
		ToEmail:     job.RefereeEmail,
		Subject:     "You've been invited to Trip Budget",
		HTMLContent: body,
		Tags:        []string{"referral-invite"},
	}
}
