package setup

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"
	"github.com/tasknest/tasknest/internal/config"
	"github.com/tasknest/tasknest/internal/http"
	"github.com/tasknest/tasknest/internal/http/handler/api"
	"github.com/tasknest/tasknest/internal/http/handler/authn"
	"github.com/tasknest/tasknest/internal/http/handler/metrics"
	"github.com/tasknest/tasknest/internal/http/handler/webui"
	"github.com/tasknest/tasknest/internal/store/repository/task"
	"github.com/tasknest/tasknest/internal/store/repository/user"
)

func NewHTTPServerFromConfig(ctx context.Context, conf *config.Config) (*http.Server, error) {
	st, err := getStoreFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.Wrap(err, "could not configure store from config")
	}

	codec, err := getTokenCodecFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.Wrap(err, "could not configure session codec from config")
	}

	authService, err := getAuthServiceFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.Wrap(err, "could not configure auth service from config")
	}

	notifier, err := getNotifierFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.Wrap(err, "could not configure notifier from config")
	}

	cookie := authn.Cookie{
		Name:     conf.HTTP.Session.Cookie.Name,
		Path:     conf.HTTP.Session.Cookie.Path,
		HTTPOnly: conf.HTTP.Session.Cookie.HTTPOnly,
		Secure:   conf.HTTP.Session.Cookie.Secure,
	}

	authenticate := authn.Middleware(codec, user.NewRepository(st), cookie)

	authnHandler := authn.NewHandler(authService, cookie)
	apiHandler := api.NewHandler(authService, task.NewRepository(st), notifier, cookie, authenticate, slog.Default())

	options := []http.OptionFunc{
		http.WithAddress(conf.HTTP.Address),
		http.WithMount("/api/", apiHandler),
		http.WithMount("/login/google", authnHandler),
		http.WithMount("/callback", authnHandler),
		http.WithMount("/metrics", authenticate(metrics.NewHandler())),
		http.WithMount("/", webui.NewHandler(authenticate)),
	}

	return http.NewServer(options...), nil
}
