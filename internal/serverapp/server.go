package serverapp

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/hedging-my-bets/myTaskLists/internal/clock"
	"github.com/hedging-my-bets/myTaskLists/internal/config"
	"github.com/hedging-my-bets/myTaskLists/internal/engine"
	"github.com/hedging-my-bets/myTaskLists/internal/httpmw"
	"github.com/hedging-my-bets/myTaskLists/internal/server"
	"github.com/hedging-my-bets/myTaskLists/internal/state"
	"github.com/hedging-my-bets/myTaskLists/internal/widget"
)

type Options struct {
	Config  *config.Config
	DataDir string
	Clock   clock.Clock
	Logger  *log.Logger
}

// App bundles the HTTP handler with the background rollover ticker.
type App struct {
	Engine  *engine.Engine
	handler http.Handler
	logger  *log.Logger
	done    chan struct{}
}

func New(opts Options) (*App, error) {
	if opts.Config == nil {
		return nil, errors.New("config is required")
	}
	if strings.TrimSpace(opts.DataDir) == "" {
		opts.DataDir = opts.Config.DataDir
	}
	if strings.TrimSpace(opts.DataDir) == "" {
		opts.DataDir = "data"
	}
	if opts.Clock == nil {
		opts.Clock = clock.RealClock{}
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	store, err := state.NewStore(opts.DataDir, opts.Logger)
	if err != nil {
		return nil, err
	}
	syncer, err := widget.NewFileSyncer(opts.DataDir, opts.Logger)
	if err != nil {
		return nil, err
	}

	eng, err := engine.New(engine.Options{
		Store:       store,
		Clock:       opts.Clock,
		Progression: opts.Config.PetProgression(),
		Widget:      syncer,
		Logger:      opts.Logger,
	})
	if err != nil {
		return nil, err
	}

	h := server.NewHandler(eng, opts.Clock, opts.Logger)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"service": "mytasklists",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})

	mux.HandleFunc("/api/state", h.GetState)
	mux.HandleFunc("/api/tasks", h.ListTasks)
	mux.HandleFunc("/api/tasks/", h.TasksSub)
	mux.HandleFunc("/api/actions/", h.Actions)
	mux.HandleFunc("/api/templates", h.Templates)
	mux.HandleFunc("/api/templates/", h.TemplatesSub)
	mux.HandleFunc("/api/settings", h.Settings)
	mux.HandleFunc("/api/pet", h.GetPet)

	mux.HandleFunc("/api/config", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(opts.Config); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})

	return &App{
		Engine: eng,
		handler: httpmw.Chain(
			mux,
			httpmw.WithAccessLog(opts.Logger),
			httpmw.WithRequestID,
			httpmw.WithRecover(opts.Logger),
		),
		logger: opts.Logger,
		done:   make(chan struct{}),
	}, nil
}

func (a *App) Handler() http.Handler { return a.handler }

// StartTicker runs the once-a-minute rollover check until Close. The
// minute cadence is what catches the midnight boundary and the grace
// window edge without the user touching the app.
func (a *App) StartTicker(interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-t.C:
				a.Engine.Tick()
			case <-a.done:
				return
			}
		}
	}()
}

func (a *App) Close() {
	select {
	case <-a.done:
	default:
		close(a.done)
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
