package setup

import (
	"context"

	"github.com/pkg/errors"
	"github.com/tasknest/tasknest/internal/auth"
	"github.com/tasknest/tasknest/internal/config"
	"github.com/tasknest/tasknest/internal/store/repository/user"
)

var getAuthServiceFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (*auth.Service, error) {
	st, err := getStoreFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	codec, err := getTokenCodecFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	provider, err := getOIDCProviderFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return auth.NewService(user.NewRepository(st), codec, provider), nil
})
