package pgmq

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Client wraps a pgx pool for pgmq queue operations.
type Client struct {
	pool *pgxpool.Pool
}

// New returns a new PGMQ client backed by the given pool.
func New(pool *pgxpool.Pool) *Client {
	return &Client{pool: pool}
}

// Message represents a single pgmq message.
type Message struct {
	ID     int64  // message identifier
	ReadCt int    // times the message has been read, starting at 1
	Data   []byte // raw JSON payload
}

// Send pushes a JSON payload into the given queue and returns its message id.
func (c *Client) Send(ctx context.Context, queue string, payload []byte) (int64, error) {
	return c.SendDelayed(ctx, queue, payload, 0)
}

// SendDelayed pushes a JSON payload that becomes visible after delaySec seconds.
func (c *Client) SendDelayed(ctx context.Context, queue string, payload []byte, delaySec int) (int64, error) {
	var id int64
	if err := c.pool.QueryRow(ctx, "SELECT pgmq.send($1, $2::jsonb, $3)", queue, string(payload), delaySec).Scan(&id); err != nil {
		return 0, fmt.Errorf("pgmq send to %s failed: %w", queue, err)
	}
	return id, nil
}

// ReadWithPoll reads up to maxMessages from the queue, blocking up to timeoutSec
// seconds. Read messages stay invisible for visibilitySec seconds.
func (c *Client) ReadWithPoll(ctx context.Context, queue string, visibilitySec, timeoutSec, maxMessages int) ([]*Message, error) {
	const q = "SELECT msg_id, read_ct, message FROM pgmq.read_with_poll($1, $2, $3, $4)"
	rows, err := c.pool.Query(ctx, q, queue, visibilitySec, maxMessages, timeoutSec)
	if err != nil {
		return nil, fmt.Errorf("pgmq read_with_poll on %s failed: %w", queue, err)
	}
	msgs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Message, error) {
		var m Message
		err := row.Scan(&m.ID, &m.ReadCt, &m.Data)
		return &m, err
	})
	if err != nil {
		return nil, fmt.Errorf("pgmq read scan failed: %w", err)
	}
	return msgs, nil
}

// Delete removes messages by their IDs from the specified queue.
func (c *Client) Delete(ctx context.Context, queue string, msgIDs []int64) error {
	if _, err := c.pool.Exec(ctx, "SELECT pgmq.delete($1, $2::bigint[])", queue, msgIDs); err != nil {
		return fmt.Errorf("pgmq delete on %s failed: %w", queue, err)
	}
	return nil
}

// Archive moves a message to the queue's archive table.
func (c *Client) Archive(ctx context.Context, queue string, msgID int64) error {
	if _, err := c.pool.Exec(ctx, "SELECT pgmq.archive($1, $2::bigint)", queue, msgID); err != nil {
		return fmt.Errorf("pgmq archive on %s failed: %w", queue, err)
	}
	return nil
}

// Exec runs a statement on the queue's database, used by workers to record
// job progress next to the queue operations.
func (c *Client) Exec(ctx context.Context, query string, args ...any) error {
	if _, err := c.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("pgmq exec failed: %w", err)
	}
	return nil
}
