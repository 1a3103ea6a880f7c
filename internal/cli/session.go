package cli

import (
	"context"
	"io"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"taskboard/internal/engine"
	"taskboard/internal/remote"
	"taskboard/internal/state"
	"taskboard/internal/store"
)

// settings are the effective values after flags, env and config file.
type settings struct {
	Dir        string `json:"dir" yaml:"dir"`
	ConfigPath string `json:"configPath" yaml:"configPath"`
	BoardsURL  string `json:"boardsURL" yaml:"boardsURL"`
	Storage    string `json:"storage" yaml:"storage"`
	RedisURL   string `json:"redisURL,omitempty" yaml:"redisURL,omitempty"`
	LogLevel   string `json:"logLevel" yaml:"logLevel"`
	LogJSON    bool   `json:"logJSON" yaml:"logJSON"`
	FetchLimit int    `json:"fetchLimit" yaml:"fetchLimit"`
	Offline    bool   `json:"offline" yaml:"offline"`

	cfg *store.Config
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func resolveSettings(app *App) (settings, error) {
	cfg, err := store.LoadConfig(app.ConfigPath)
	if err != nil {
		return settings{}, err
	}
	configPath := app.ConfigPath
	if configPath == "" {
		if p, err := store.ConfigPath(); err == nil {
			configPath = p
		}
	}
	dir := app.Dir
	if dir == "" {
		d, err := store.DefaultDir()
		if err != nil {
			return settings{}, err
		}
		dir = d
	}
	return settings{
		Dir:        dir,
		ConfigPath: configPath,
		BoardsURL:  firstNonEmpty(app.BoardsURL, cfg.BoardsURL, remote.DefaultBoardsURL),
		Storage:    firstNonEmpty(app.Storage, cfg.Storage, store.BackendSQLite),
		RedisURL:   firstNonEmpty(app.RedisURL, cfg.RedisURL),
		LogLevel:   firstNonEmpty(app.LogLevel, cfg.LogLevel, "warn"),
		LogJSON:    app.LogJSON || cfg.LogJSON,
		FetchLimit: cfg.FetchLimit,
		Offline:    app.Offline,
		cfg:        cfg,
	}, nil
}

func newLogger(w io.Writer, s settings) *log.Logger {
	l := log.New()
	l.SetOutput(w)
	if lvl, err := log.ParseLevel(s.LogLevel); err == nil {
		l.SetLevel(lvl)
	} else {
		l.SetLevel(log.WarnLevel)
	}
	if s.LogJSON {
		l.SetFormatter(&log.JSONFormatter{})
	} else {
		l.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	}
	return l
}

// session is one opened data dir: backend, gateway and a running engine that
// persists every committed transition.
type session struct {
	settings settings
	store    store.Store
	kv       store.KV
	gateway  *store.Gateway
	engine   *engine.Engine
	log      *log.Logger
}

func openSession(cmd *cobra.Command, app *App) (*session, error) {
	s, err := resolveSettings(app)
	if err != nil {
		return nil, err
	}
	logger := newLogger(cmd.ErrOrStderr(), s)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	st := store.Store{Dir: s.Dir}
	kv, err := store.Open(ctx, s.Storage, st, s.RedisURL)
	if err != nil {
		return nil, err
	}
	gw := store.NewGateway(kv, logger)
	initial := state.New()
	if err := gw.Rehydrate(ctx, initial); err != nil {
		_ = kv.Close()
		return nil, err
	}

	var src engine.Source
	if !s.Offline {
		c := remote.NewClient(s.BoardsURL)
		c.Log = logger
		src = c
	}
	eng := engine.New(initial, src,
		engine.WithLogger(logger),
		engine.WithObserver(gw.Observe),
		engine.WithFetchLimit(s.FetchLimit),
	)
	eng.Start()

	return &session{settings: s, store: st, kv: kv, gateway: gw, engine: eng, log: logger}, nil
}

func (s *session) Close() {
	s.engine.Close()
	if err := s.kv.Close(); err != nil {
		s.log.WithError(err).Debug("close storage")
	}
}

func ctxOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// update runs fn as one transition and returns the state it produced.
func (s *session) update(cmd *cobra.Command, name string, fn func(*state.State) error) (*state.State, error) {
	ctx := ctxOf(cmd)
	if err := s.engine.Do(ctx, name, fn); err != nil {
		return nil, err
	}
	return s.engine.Snapshot(ctx)
}

func (s *session) snapshot(cmd *cobra.Command) (*state.State, error) {
	return s.engine.Snapshot(ctxOf(cmd))
}

// withSession opens a session for the duration of fn.
func withSession(cmd *cobra.Command, app *App, fn func(s *session) error) error {
	s, err := openSession(cmd, app)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer s.Close()
	if err := fn(s); err != nil {
		return writeErr(cmd, err)
	}
	return nil
}

func boardOrActive(st *state.State, boardID string) (string, error) {
	boardID = strings.TrimSpace(boardID)
	if boardID == "" {
		boardID = st.ActiveBoardID
	}
	if boardID == "" {
		return "", errNoActiveBoard
	}
	if _, err := st.RequireBoard(boardID); err != nil {
		return "", err
	}
	return boardID, nil
}
