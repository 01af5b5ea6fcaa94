package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Jaggernaut555/chaoticbot/history"
	"github.com/Jaggernaut555/chaoticbot/ledger"
	"github.com/Jaggernaut555/chaoticbot/logging"

	_ "github.com/go-sql-driver/mysql"
	"github.com/go-xorm/xorm"
	"xorm.io/core"
)

// Account - A player's money
type Account struct {
	ID     string `xorm:"varchar(50) pk"`
	OnHand int    `xorm:"default 0"`
	Banked int    `xorm:"default 0"`
}

// Game - A finished game
type Game struct {
	ID        uint64    `xorm:"pk autoincr"`
	SessionID string    `xorm:"varchar(36) not null unique"`
	Kind      string    `xorm:"varchar(20) not null"`
	ChannelID string    `xorm:"varchar(50) not null"`
	StarterID string    `xorm:"varchar(50) not null"`
	WinnerID  string    `xorm:"varchar(50)"`
	Stake     int       `xorm:"default 0"`
	Time      time.Time `xorm:"not null"`
}

// GamePlayer - Everybody who sat at a game and what they walked away with
type GamePlayer struct {
	GameID uint64 `xorm:"pk"`
	UserID string `xorm:"varchar(50) pk"`
	Delta  int    `xorm:"default 0"`
}

// Config - Connection settings
type Config struct {
	Name     string
	User     string
	Password string
	Host     string
}

func (c Config) dsn() string {
	host := ""
	if c.Host != "" {
		host = "tcp(" + c.Host + ")"
	}
	return c.User + ":" + c.Password + "@" + host + "/" + c.Name + "?charset=utf8mb4&parseTime=true"
}

// Store - MySQL backed ledger and game history
type Store struct {
	engine *xorm.Engine
}

var (
	_ ledger.Ledger    = (*Store)(nil)
	_ history.Recorder = (*Store)(nil)
)

//Setup Open the database and make sure every table exists
func Setup(cfg Config) (*Store, error) {
	if cfg.Password == "" {
		return nil, errors.New("blank database password")
	}
	if cfg.Name == "" {
		return nil, errors.New("blank database name")
	}
	if cfg.User == "" {
		return nil, errors.New("blank database username")
	}

	e, err := xorm.NewEngine("mysql", cfg.dsn())
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}
	return newStore(e)
}

func newStore(e *xorm.Engine) (*Store, error) {
	e.SetMapper(core.SameMapper{})
	if err := createTables(e); err != nil {
		return nil, err
	}
	return &Store{engine: e}, nil
}

// Close - Release the connection pool
func (s *Store) Close() error {
	return s.engine.Close()
}

func createTables(e *xorm.Engine) error {
	for _, table := range []interface{}{new(Account), new(Game), new(GamePlayer)} {
		if err := e.Sync2(table); err != nil {
			return fmt.Errorf("error syncing table %T: %w", table, err)
		}
	}
	return nil
}

// Balance - A player without a row has no money
func (s *Store) Balance(ctx context.Context, playerID string) (ledger.Account, error) {
	acct := &Account{ID: playerID}
	has, err := s.engine.Context(ctx).Get(acct)
	if err != nil {
		return ledger.Account{}, err
	}
	if !has {
		return ledger.Account{}, nil
	}
	return ledger.Account{OnHand: acct.OnHand, Banked: acct.Banked}, nil
}

// Apply - Settle a net delta inside a transaction
func (s *Store) Apply(ctx context.Context, playerID string, delta int) error {
	session := s.engine.NewSession()
	defer session.Close()
	session.Context(ctx)

	if err := session.Begin(); err != nil {
		return err
	}

	acct := &Account{ID: playerID}
	has, err := session.Get(acct)
	if err != nil {
		session.Rollback()
		return err
	}

	next := ledger.Account{OnHand: acct.OnHand, Banked: acct.Banked}.Apply(delta)
	acct.OnHand, acct.Banked = next.OnHand, next.Banked

	if has {
		_, err = session.ID(acct.ID).Cols("OnHand", "Banked").Update(acct)
	} else {
		_, err = session.Insert(acct)
	}
	if err != nil {
		session.Rollback()
		return err
	}

	logging.Logger("db").Info("balance changed", "player", playerID, "delta", delta, "on_hand", acct.OnHand, "banked", acct.Banked)
	return session.Commit()
}

// RecordGame - Store a finished game and each player's outcome
func (s *Store) RecordGame(ctx context.Context, rec history.Record) error {
	session := s.engine.NewSession()
	defer session.Close()
	session.Context(ctx)

	if err := session.Begin(); err != nil {
		return err
	}

	game := &Game{
		SessionID: rec.SessionID.String(),
		Kind:      rec.Game,
		ChannelID: rec.ChannelID,
		StarterID: rec.StarterID,
		WinnerID:  rec.WinnerID,
		Stake:     rec.Stake,
		Time:      rec.Time,
	}
	if _, err := session.Insert(game); err != nil {
		session.Rollback()
		return err
	}

	for _, p := range rec.Players {
		if _, err := session.Insert(&GamePlayer{GameID: game.ID, UserID: p.PlayerID, Delta: p.Delta}); err != nil {
			session.Rollback()
			return err
		}
	}
	return session.Commit()
}

// Purge - Delete every game record. Balances are left alone
func (s *Store) Purge() error {
	s.engine.ShowSQL(true)
	logging.Log("Purging Database")
	if _, err := s.engine.Where("1 = 1").Delete(new(GamePlayer)); err != nil {
		return err
	}
	if _, err := s.engine.Where("1 = 1").Delete(new(Game)); err != nil {
		return err
	}
	return nil
}
