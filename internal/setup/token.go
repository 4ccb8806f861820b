package setup

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"
	"github.com/tasknest/tasknest/internal/config"
	"github.com/tasknest/tasknest/internal/crypto"
	"github.com/tasknest/tasknest/internal/token"
)

var getTokenCodecFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (*token.Codec, error) {
	secret := conf.HTTP.Session.Secret
	if secret == "" {
		generated, err := crypto.RandomToken(32)
		if err != nil {
			return nil, errors.Wrap(err, "could not generate session signing secret")
		}

		slog.WarnContext(ctx, "no session signing secret configured, generated one; sessions will not survive a restart")

		secret = generated
	}

	return token.NewCodec([]byte(secret)), nil
})
