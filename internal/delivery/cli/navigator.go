package cli

import (
	"log/slog"

	"go.uber.org/fx"

	"storefront/internal/domain/service"
)

// logNavigator satisfies the stores' navigation contract. A terminal front
// end has no pages to switch, so a route change is only announced.
type logNavigator struct {
	logger *slog.Logger
}

// NavigatorParams holds dependencies for the navigator, injected by Fx.
type NavigatorParams struct {
	fx.In

	Logger *slog.Logger
}

// NewNavigator is the constructor for logNavigator.
func NewNavigator(params NavigatorParams) service.Navigator {
	return &logNavigator{logger: params.Logger}
}

func (n *logNavigator) Navigate(route service.Route) {
	n.logger.Info("Navigating", slog.String("route", string(route)))
}
