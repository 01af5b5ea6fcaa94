package db

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/Jaggernaut555/chaoticbot/history"
	"github.com/Jaggernaut555/chaoticbot/ledger"
	"github.com/go-xorm/xorm"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"modernc.org/sqlite"
)

// xorm only knows sqlite under the "sqlite3" driver name
func init() {
	sql.Register("sqlite3", &sqlite.Driver{})
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	e, err := xorm.NewEngine("sqlite3", filepath.Join(t.TempDir(), "chaotic.db"))
	require.NoError(t, err)
	e.SetMaxOpenConns(1)

	s, err := newStore(e)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStoreApply(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	acct, err := s.Balance(ctx, "nobody")
	require.NoError(t, err)
	assert.Equal(t, ledger.Account{}, acct)

	// first win creates the row
	require.NoError(t, s.Apply(ctx, "alice", 8))
	acct, err = s.Balance(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, ledger.Account{OnHand: 8}, acct)

	_, err = s.engine.Insert(&Account{ID: "bob", OnHand: 3, Banked: 50})
	require.NoError(t, err)

	// losses drain what's on hand before the bank
	require.NoError(t, s.Apply(ctx, "bob", -5))
	acct, err = s.Balance(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, ledger.Account{OnHand: 0, Banked: 48}, acct)

	require.NoError(t, s.Apply(ctx, "bob", 20))
	acct, err = s.Balance(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, ledger.Account{OnHand: 20, Banked: 48}, acct)

	count, err := s.engine.Count(new(Account))
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}

func TestStoreRecordGame(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Apply(ctx, "alice", 100))

	rec := history.Record{
		SessionID: uuid.New(),
		Game:      "blackjack",
		ChannelID: "chan",
		StarterID: "alice",
		Stake:     5,
		Players:   []history.PlayerResult{{PlayerID: "alice", Delta: 8}, {PlayerID: "bob", Delta: -5}},
		Time:      time.Now().UTC(),
	}
	require.NoError(t, s.RecordGame(ctx, rec))

	var games []Game
	require.NoError(t, s.engine.Cols("ID", "SessionID", "Kind", "Stake").Find(&games))
	require.Len(t, games, 1)
	assert.Equal(t, rec.SessionID.String(), games[0].SessionID)
	assert.Equal(t, "blackjack", games[0].Kind)
	assert.Equal(t, 5, games[0].Stake)

	var players []GamePlayer
	require.NoError(t, s.engine.Asc("UserID").Find(&players))
	assert.Equal(t, []GamePlayer{
		{GameID: games[0].ID, UserID: "alice", Delta: 8},
		{GameID: games[0].ID, UserID: "bob", Delta: -5},
	}, players)

	// the same session can't be recorded twice, and nothing half-written is left behind
	assert.Error(t, s.RecordGame(ctx, rec))
	count, err := s.engine.Count(new(GamePlayer))
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	require.NoError(t, s.Purge())
	count, err = s.engine.Count(new(Game))
	require.NoError(t, err)
	assert.Zero(t, count)
	count, err = s.engine.Count(new(GamePlayer))
	require.NoError(t, err)
	assert.Zero(t, count)

	acct, err := s.Balance(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 100, acct.OnHand)
}
