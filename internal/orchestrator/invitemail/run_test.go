package invitemail

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"tripbudget/internal/mocks"
	"tripbudget/internal/model"
	"tripbudget/internal/pgmq"
	"tripbudget/internal/service"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type execCall struct {
	query string
	args  []any
}

type fakeQueue struct {
	mu       sync.Mutex
	pending  []*pgmq.Message
	deleted  []int64
	archived []int64
	sent     map[string][][]byte
	execs    []execCall
}

func newFakeQueue(msgs ...*pgmq.Message) *fakeQueue {
	return &fakeQueue{pending: msgs, sent: map[string][][]byte{}}
}

func (q *fakeQueue) ReadWithPoll(ctx context.Context, _ string, _, _, maxMessages int) ([]*pgmq.Message, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.pending) == 0 {
		return nil, ctx.Err()
	}
	n := min(maxMessages, len(q.pending))
	out := q.pending[:n]
	q.pending = q.pending[n:]
	return out, nil
}

func (q *fakeQueue) Send(_ context.Context, queue string, payload []byte) (int64, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.sent[queue] = append(q.sent[queue], payload)
	return int64(len(q.sent[queue])), nil
}

func (q *fakeQueue) Delete(_ context.Context, _ string, msgIDs []int64) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.deleted = append(q.deleted, msgIDs...)
	return nil
}

func (q *fakeQueue) Archive(_ context.Context, _ string, msgID int64) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.archived = append(q.archived, msgID)
	return nil
}

func (q *fakeQueue) Exec(_ context.Context, query string, args ...any) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.execs = append(q.execs, execCall{query: query, args: args})
	return nil
}

func testOptions() Options {
	return Options{
		Queue:           "referral_invite_queue",
		DeadLetterQueue: "referral_invite_queue_dlq",
		PollTimeoutSec:  1,
		PollMaxMsg:      1,
		MaxRetries:      3,
		BackoffInitial:  time.Second,
		BackoffMax:      3 * time.Second,
		RequestTimeout:  time.Second,
		AppBaseURL:      "https://tripbudget.app/",
	}
}

func jobMessage(t *testing.T, id int64, job model.InviteJob) *pgmq.Message {
	t.Helper()
	data, err := json.Marshal(job)
	require.NoError(t, err)
	return &pgmq.Message{ID: id, ReadCt: 1, Data: data}
}

func newTestWorker(q Queue, sender service.EmailSender) (*Worker, *[]time.Duration) {
	w := NewWorker(q, sender, testOptions(), zerolog.Nop())
	var slept []time.Duration
	w.sleep = func(_ context.Context, d time.Duration) { slept = append(slept, d) }
	return w, &slept
}

var job = model.InviteJob{
	ReferralID:   "ref-1",
	ReferrerID:   "alice",
	RefereeEmail: "friend@example.com",
	ReferralCode: "AB12CD",
}

func TestInviteURL(t *testing.T) {
	req := require.New(t)
	req.Equal("https://tripbudget.app/invite?code=AB12CD", InviteURL("https://tripbudget.app/", "AB12CD"))
}

func TestWorker_ProcessMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("should send the invite and acknowledge the job", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		sender := mocks.NewMockEmailSender(ctrl)
		q := newFakeQueue()
		w, slept := newTestWorker(q, sender)

		sender.EXPECT().
			Send(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, e service.Email) (string, error) {
				req.Equal("friend@example.com", e.ToEmail)
				req.Contains(e.HTMLContent, "https://tripbudget.app/invite?code=AB12CD")
				req.Contains(e.HTMLContent, "AB12CD")
				return "msg-1", nil
			})

		w.processMessage(ctx, jobMessage(t, 7, job))

		req.Equal([]int64{7}, q.deleted)
		req.Empty(*slept)
		req.Len(q.execs, 1)
		req.Contains(q.execs[0].query, "invite_sent_at = NOW()")
		req.Equal([]any{"ref-1"}, q.execs[0].args)
		req.Empty(q.sent)
	})

	t.Run("should back off exponentially and succeed on a later attempt", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		sender := mocks.NewMockEmailSender(ctrl)
		q := newFakeQueue()
		w, slept := newTestWorker(q, sender)

		gomock.InOrder(
			sender.EXPECT().Send(gomock.Any(), gomock.Any()).Return("", errors.New("timeout")),
			sender.EXPECT().Send(gomock.Any(), gomock.Any()).Return("", &service.BrevoError{StatusCode: http.StatusBadGateway}),
			sender.EXPECT().Send(gomock.Any(), gomock.Any()).Return("msg-1", nil),
		)

		w.processMessage(ctx, jobMessage(t, 8, job))

		req.Equal([]time.Duration{time.Second, 2 * time.Second}, *slept)
		req.Equal([]int64{8}, q.deleted)
		req.Empty(q.sent)
	})

	t.Run("should move exhausted jobs to the dead-letter queue", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		sender := mocks.NewMockEmailSender(ctrl)
		q := newFakeQueue()
		w, slept := newTestWorker(q, sender)

		sender.EXPECT().Send(gomock.Any(), gomock.Any()).Return("", errors.New("connection refused")).Times(3)

		msg := jobMessage(t, 9, job)
		w.processMessage(ctx, msg)

		req.Equal([]time.Duration{time.Second, 2 * time.Second}, *slept)
		req.Equal([]int64{9}, q.deleted)
		req.Len(q.sent["referral_invite_queue_dlq"], 1)
		req.JSONEq(string(msg.Data), string(q.sent["referral_invite_queue_dlq"][0]))
		req.Len(q.execs, 1)
		req.Contains(q.execs[0].query, "invite_error")
	})

	t.Run("should not retry a rejected request", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		sender := mocks.NewMockEmailSender(ctrl)
		q := newFakeQueue()
		w, slept := newTestWorker(q, sender)

		sender.EXPECT().Send(gomock.Any(), gomock.Any()).Return("", &service.BrevoError{StatusCode: http.StatusBadRequest, Code: "invalid_parameter"}).Times(1)

		w.processMessage(ctx, jobMessage(t, 10, job))

		req.Empty(*slept)
		req.Len(q.sent["referral_invite_queue_dlq"], 1)
	})

	t.Run("should archive malformed payloads", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		sender := mocks.NewMockEmailSender(ctrl)
		q := newFakeQueue()
		w, _ := newTestWorker(q, sender)

		sender.EXPECT().Send(gomock.Any(), gomock.Any()).Times(0)

		w.processMessage(ctx, &pgmq.Message{ID: 11, Data: []byte(`{"referral_code":""}`)})

		req.Equal([]int64{11}, q.archived)
		req.Empty(q.deleted)
		req.Empty(q.sent)
	})
}

func TestWorker_Run(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	sender := mocks.NewMockEmailSender(ctrl)
	q := newFakeQueue(jobMessage(t, 1, job), jobMessage(t, 2, job))
	w, _ := newTestWorker(q, sender)

	ctx, cancel := context.WithCancel(context.Background())
	var sent int
	sender.EXPECT().
		Send(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, service.Email) (string, error) {
			sent++
			if sent == 2 {
				cancel()
			}
			return "msg", nil
		}).
		Times(2)

	req.NoError(w.Run(ctx))
	req.ElementsMatch([]int64{1, 2}, q.deleted)
}
