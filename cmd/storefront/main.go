package main

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"storefront/config"
	"storefront/internal/delivery"
	"storefront/internal/delivery/cli"
	"storefront/internal/infra/alert"
	"storefront/internal/infra/localstore"
	logs "storefront/internal/infra/log"
	"storefront/internal/infra/rest"
	"storefront/internal/infra/token"
	"storefront/internal/store"
	"storefront/internal/store/impl"
)

// sessionTokens defers the bearer lookup to the auth store once it exists.
// The REST client is built before the stores, so the credential source has
// to be bound late; no request runs before bindSession does.
type sessionTokens struct {
	auth store.AuthStore
}

func newSessionTokens() *sessionTokens {
	return &sessionTokens{}
}

func (s *sessionTokens) Token() string {
	if s.auth == nil {
		return ""
	}

	return s.auth.Token()
}

func main() {
	fx.New(
		injectInfra(),
		injectGateway(),
		injectStore(),
		injectDelivery(),
		fx.Invoke(
			bindSession,
			runDeliveries,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		localstore.New,
		alert.New,
		token.NewInspector,
		cli.NewNavigator,
	)
}

func injectGateway() fx.Option {
	return fx.Provide(
		newSessionTokens,
		func(s *sessionTokens) rest.TokenSource { return s },
		func(l store.LoadingStore) rest.LoadingTracker { return l },
		rest.NewClient,
		rest.NewAuthGateway,
		rest.NewCartGateway,
		rest.NewCatalogGateway,
		rest.NewOrderGateway,
	)
}

func injectStore() fx.Option {
	return fx.Provide(
		impl.NewLoadingStore,
		impl.NewCartStore,
		impl.NewAuthStore,
		impl.NewCatalogStore,
		impl.NewOrderStore,
	)
}

func injectDelivery() fx.Option {
	return fx.Provide(
		fx.Annotate(
			cli.New,
			fx.ResultTags(`group:"deliveries"`),
		),
	)
}

// bindSession closes the loop between the transport chain and the auth
// store: bearer credentials come from the live session, and a rejected
// credential forces a logout.
func bindSession(tokens *sessionTokens, client *rest.Client, auth store.AuthStore) {
	tokens.auth = auth
	client.OnUnauthorized(auth.ForceLogout)
}

type runParams struct {
	fx.In

	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Deliveries []delivery.Delivery `group:"deliveries"`
}

func runDeliveries(ctx context.Context, params runParams) {
	go func() {
		code := 0
		for _, d := range params.Deliveries {
			if err := d.Serve(ctx); err != nil {
				params.Logger.Error("Command failed", slog.Any("error", err))
				code = 1
			}
		}
		_ = params.Shutdowner.Shutdown(fx.ExitCode(code))
	}()
}
