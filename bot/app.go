package bot

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	tele "gopkg.in/telebot.v4"

	"filegate/bot/handlers"
	"filegate/bot/ui"
	"filegate/core/bootstrap"
	corecmd "filegate/core/cmd"
	coretelegram "filegate/core/telegram"
	tghelpers "filegate/core/telegram/helpers"
	"filegate/core/telegram/router"
	"filegate/core/telegram/state"
	"filegate/service/access"
	"filegate/service/gate"
	"filegate/service/subscription"
	"filegate/storage"
)

// App wires storage, services, and handlers into a runnable bot.
type App struct {
	cfg      *Config
	db       *sqlx.DB
	repo     *storage.Repository
	access   *access.Service
	states   state.Manager
	handlers *handlers.Handlers
}

// Bootstrap initializes the logger, database, and migrations, then builds
// the application graph.
func Bootstrap(carrier corecmd.ConfigCarrier) (*App, error) {
	cfg, ok := carrier.(*Config)
	if !ok {
		return nil, fmt.Errorf("bot: unexpected config type %T", carrier)
	}

	res, err := bootstrap.Run(bootstrap.Options{
		Config:   &cfg.Config,
		Database: cfg.Database,
	})
	if err != nil {
		return nil, err
	}

	repo := storage.New(res.DB)
	acc := access.New(cfg.StaticAdminIDs(), repo)
	states := state.NewMemoryManager()

	return &App{
		cfg:      cfg,
		db:       res.DB,
		repo:     repo,
		access:   acc,
		states:   states,
		handlers: handlers.New(repo, acc, states),
	}, nil
}

// TelegramRunOptions builds the registry, middleware chain, and routes.
func (a *App) TelegramRunOptions() (coretelegram.RunOptions, error) {
	reg := coretelegram.NewRegistry()
	a.handlers.Register(reg)

	mws := coretelegram.DefaultMiddlewares(&a.cfg.Config, nil)
	mws = append(mws,
		coretelegram.Middleware{Name: "track_user", Use: handlers.TrackUserMiddleware(a.repo)},
		coretelegram.Middleware{Name: "subscription_gate", Use: gate.Middleware(gate.Options{
			Exempt: a.access.IsExempt,
			Active: a.repo.ActiveChannels,
			Missing: func(ctx context.Context, c tele.Context, userID int64, channels []storage.Channel) []storage.Channel {
				return subscription.Missing(ctx, c.Bot(), userID, channels)
			},
			Prompt: func(c tele.Context, missing []storage.Channel) error {
				return tghelpers.SendMD(c, ui.TextSubscribeFirst, ui.SubscriptionPrompt(missing))
			},
		})},
	)

	routes := []coretelegram.Route{
		router.CallbackRoute(reg, router.CallbackOptions{}),
	}
	routes = append(routes, router.TextRoutes(a.states, reg, router.TextOptions{
		UnknownText: a.handlers.HandleLooseText,
	})...)
	routes = append(routes, router.CommandRoutes(reg, router.CommandRouteOptions{
		IsAdmin:       a.access.AdminChecker(),
		OnAdminReject: handlers.RejectNotAdmin,
	})...)

	return coretelegram.RunOptions{
		Config:      &a.cfg.Config,
		Registry:    reg,
		Middlewares: mws,
		Routes:      routes,
		OnStop: func(context.Context, coretelegram.Runtime) error {
			return a.db.Close()
		},
	}, nil
}
