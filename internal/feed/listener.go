package feed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/pudiya/internal/config"
	"github.com/heartmarshall/pudiya/internal/domain"
)

// Channel is the NOTIFY channel written by the entries trigger.
const Channel = "entries_changed"

// loader reads the full ordered collection.
type loader interface {
	ListAll(ctx context.Context) ([]domain.Entry, error)
}

// publisher is satisfied by *Hub.
type publisher interface {
	Publish(entries []domain.Entry)
	PublishError(err error)
}

// notifyConn is the subset of *pgx.Conn used for LISTEN.
type notifyConn interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	WaitForNotification(ctx context.Context) (*pgconn.Notification, error)
	Close(ctx context.Context) error
}

// connector opens a dedicated connection for LISTEN.
type connector func(ctx context.Context) (notifyConn, error)

// PGListener keeps a publisher in sync with the entries table. Every
// notification triggers a full reload; a lost connection is re-established
// with exponential backoff and reported to the publisher as an error update.
type PGListener struct {
	log     *slog.Logger
	connect connector
	entries loader
	out     publisher
	cfg     config.FeedConfig
	sleep   func(ctx context.Context, d time.Duration) error
}

// NewPGListener creates a listener that hijacks one connection from pool for
// the lifetime of each LISTEN session.
func NewPGListener(logger *slog.Logger, pool *pgxpool.Pool, entries loader, out publisher, cfg config.FeedConfig) *PGListener {
	return newListener(logger, poolConnector(pool), entries, out, cfg)
}

func newListener(logger *slog.Logger, connect connector, entries loader, out publisher, cfg config.FeedConfig) *PGListener {
	return &PGListener{
		log:     logger.With("service", "feed_listener"),
		connect: connect,
		entries: entries,
		out:     out,
		cfg:     cfg,
		sleep:   sleepCtx,
	}
}

func poolConnector(pool *pgxpool.Pool) connector {
	return func(ctx context.Context) (notifyConn, error) {
		pc, err := pool.Acquire(ctx)
		if err != nil {
			return nil, err
		}
		// The LISTEN session must not go back into the pool.
		return pc.Hijack(), nil
	}
}

// Run listens until ctx is cancelled. It returns nil on cancellation.
func (l *PGListener) Run(ctx context.Context) error {
	backoff := l.cfg.ReconnectMin

	for {
		connected, err := l.session(ctx)
		if ctx.Err() != nil {
			return nil
		}
		if connected {
			backoff = l.cfg.ReconnectMin
		}

		l.log.WarnContext(ctx, "entries feed interrupted",
			slog.String("error", err.Error()),
			slog.Duration("retry_in", backoff))
		l.out.PublishError(err)

		if err := l.sleep(ctx, backoff); err != nil {
			return nil
		}
		backoff = min(backoff*2, l.cfg.ReconnectMax)
	}
}

// session runs one LISTEN session. connected reports whether the initial
// snapshot was published.
func (l *PGListener) session(ctx context.Context) (connected bool, err error) {
	conn, err := l.connect(ctx)
	if err != nil {
		return false, fmt.Errorf("feed.connect: %w", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = conn.Close(closeCtx)
	}()

	if _, err := conn.Exec(ctx, "LISTEN "+Channel); err != nil {
		return false, fmt.Errorf("feed.listen: %w", err)
	}

	if err := l.reload(ctx); err != nil {
		return false, err
	}
	l.log.InfoContext(ctx, "entries feed listening", slog.String("channel", Channel))

	for {
		n, err := conn.WaitForNotification(ctx)
		if err != nil {
			return true, fmt.Errorf("feed.wait: %w", err)
		}
		l.log.DebugContext(ctx, "entries changed", slog.String("entry_id", n.Payload))

		if err := l.reload(ctx); err != nil {
			return true, err
		}
	}
}

func (l *PGListener) reload(ctx context.Context) error {
	reloadCtx, cancel := context.WithTimeout(ctx, l.cfg.ReloadTimeout)
	defer cancel()

	entries, err := l.entries.ListAll(reloadCtx)
	if err != nil {
		return fmt.Errorf("feed.reload: %w", err)
	}
	l.out.Publish(entries)
	return nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
