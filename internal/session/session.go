// Package session owns the identity of the current board position and keeps
// the in-memory annotation record synchronized with the authoritative store.
// All collaborators are injected: the rules oracle that knows which position
// is current, the board display that mirrors it, the store client that round
// trips the record, and the view that receives the rendered move list.
package session

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"chessbook/internal/annotation"
	"chessbook/internal/present"
)

// Oracle is the move-legality engine. Play returns false for a rejected
// move, which is a normal negative result rather than an error.
type Oracle interface {
	FEN() string
	Play(move string) bool
	Undo() bool
}

// BoardDisplay mirrors the logical position visually. SetPosition is
// synchronous and must not wait on any network round trip.
type BoardDisplay interface {
	SetPosition(fen string)
}

// StoreClient is the request/response surface of the annotation store.
type StoreClient interface {
	FetchByPosition(ctx context.Context, fen string) (*annotation.Record, error)
	Save(ctx context.Context, id annotation.ID, catalog *annotation.Catalog) (*annotation.Record, error)
}

// View receives the freshly rendered move list after every state change.
// The previous list is replaced wholesale.
type View interface {
	ShowMoveList(list present.List)
}

type Session struct {
	oracle Oracle
	board  BoardDisplay
	store  StoreClient
	view   View
	logger *zap.Logger

	mu      sync.Mutex
	fen     string
	record  *annotation.Record
	seq     uint64
	lastErr error
	notify  func(error)
}

func New(oracle Oracle, board BoardDisplay, store StoreClient, view View, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		oracle: oracle,
		board:  board,
		store:  store,
		view:   view,
		logger: logger,
	}
}

// OnSyncFailure registers a hook invoked whenever a fetch or save round
// trip fails. The previously displayed state stays visible either way; the
// hook exists so the failure is not silent.
func (s *Session) OnSyncFailure(fn func(error)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notify = fn
}

// LastErr returns the most recent sync failure, cleared by the next
// successful round trip.
func (s *Session) LastErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// FEN returns the position key the session is currently synced to.
func (s *Session) FEN() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fen
}

// Record returns a copy of the current annotation record, nil before the
// first successful Update.
func (s *Session) Record() *annotation.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.record.Clone()
}

// Update re-synchronizes to the oracle's current position: the board is
// updated immediately so the visual position never lags on the network,
// then the record is fetched and the move list re-rendered.
func (s *Session) Update(ctx context.Context) error {
	s.mu.Lock()
	fen := s.oracle.FEN()
	s.fen = fen
	seq := s.nextSeqLocked()
	s.mu.Unlock()

	s.board.SetPosition(fen)

	rec, err := s.store.FetchByPosition(ctx, fen)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.seq {
		// A later round trip was issued while this one was in flight;
		// its response is authoritative, ours is stale.
		s.logger.Debug("discarding stale fetch response", zap.String("fen", fen))
		return nil
	}
	if err != nil {
		s.failLocked(fmt.Errorf("fetching record for position: %w", err))
		return err
	}
	s.record = rec
	s.lastErr = nil
	s.renderLocked()
	return nil
}

// AddOrUpdateMove applies an optimistic local edit and round trips the full
// catalog through the store. A nil rate and empty comment yield an empty
// annotation entry, not null fields. On resolution the in-memory catalog is
// replaced wholesale by the server's canonical view.
func (s *Session) AddOrUpdateMove(ctx context.Context, move string, rate *int, comment string) error {
	return s.edit(ctx, func(catalog *annotation.Catalog) {
		catalog.Set(move, annotation.MoveAnnotation{Rate: rate, Comment: comment})
	})
}

// DeleteMove removes a move from the catalog. Deleting an absent move still
// round trips the unchanged catalog, which the store treats as a no-op.
func (s *Session) DeleteMove(ctx context.Context, move string) error {
	return s.edit(ctx, func(catalog *annotation.Catalog) {
		catalog.Delete(move)
	})
}

func (s *Session) edit(ctx context.Context, mutate func(*annotation.Catalog)) error {
	s.mu.Lock()
	if s.record == nil {
		s.mu.Unlock()
		return fmt.Errorf("no annotation record: session not synced yet")
	}
	mutate(s.record.Moves)
	s.renderLocked()

	id := s.record.ID
	snapshot := s.record.Moves.Clone()
	seq := s.nextSeqLocked()
	s.mu.Unlock()

	rec, err := s.store.Save(ctx, id, snapshot)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.seq {
		s.logger.Debug("discarding stale save response", zap.String("id", string(id)))
		return nil
	}
	if err != nil {
		s.failLocked(fmt.Errorf("saving move catalog: %w", err))
		return err
	}
	s.record = rec
	s.lastErr = nil
	s.renderLocked()
	return nil
}

// PlayMove routes a move attempt through the oracle. A rejected move
// returns (false, nil). A legal move already present in the catalog is
// simply played, so an existing rating or comment is never clobbered by an
// empty entry; an unseen move is recorded against the departed position
// before the session re-syncs.
func (s *Session) PlayMove(ctx context.Context, move string) (bool, error) {
	s.mu.Lock()
	known := s.record != nil && s.record.Moves.Has(move)
	s.mu.Unlock()

	if !s.oracle.Play(move) {
		return false, nil
	}

	if !known {
		if err := s.AddOrUpdateMove(ctx, move, nil, ""); err != nil {
			// The move was played regardless; the annotation entry is
			// what failed to stick.
			return true, err
		}
	}
	return true, s.Update(ctx)
}

// Undo pops the last applied move and re-syncs. It is purely a navigation
// operation; no store interaction happens beyond the re-sync fetch.
func (s *Session) Undo(ctx context.Context) error {
	if !s.oracle.Undo() {
		return nil
	}
	return s.Update(ctx)
}

func (s *Session) nextSeqLocked() uint64 {
	s.seq++
	return s.seq
}

func (s *Session) renderLocked() {
	if s.view == nil {
		return
	}
	s.view.ShowMoveList(present.Render(s.record.Moves))
}

func (s *Session) failLocked(err error) {
	s.lastErr = err
	s.logger.Warn("annotation sync failed", zap.Error(err))
	if s.notify != nil {
		go s.notify(err)
	}
}
