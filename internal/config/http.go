package config

import "time"

type HTTP struct {
	BaseURL string  `env:"BASE_URL,expand" envDefault:"http://localhost:3000"`
	Address string  `env:"ADDRESS,expand" envDefault:":3000"`
	Session Session `envPrefix:"SESSION_"`
	Authn   Authn   `envPrefix:"AUTHN_"`
}

type Session struct {
	// Secret signs session credentials. A random one is generated at
	// startup when left empty, invalidating sessions on restart.
	Secret string `env:"SECRET"`
	Cookie Cookie `envPrefix:"COOKIE_"`
}

type Cookie struct {
	Name     string `env:"NAME" envDefault:"token"`
	Path     string `env:"PATH" envDefault:"/"`
	HTTPOnly bool   `env:"HTTP_ONLY" envDefault:"true"`
	Secure   bool   `env:"SECURE" envDefault:"false"`
}

type Authn struct {
	Google GoogleProvider `envPrefix:"GOOGLE_"`
}

type GoogleProvider struct {
	ClientID     string        `env:"CLIENT_ID"`
	ClientSecret string        `env:"CLIENT_SECRET"`
	Scopes       []string      `env:"SCOPES" envSeparator:"," envDefault:"openid,profile,email"`
	AuthURL      string        `env:"AUTH_URL" envDefault:"https://accounts.google.com/o/oauth2/auth"`
	TokenURL     string        `env:"TOKEN_URL" envDefault:"https://oauth2.googleapis.com/token"`
	JWKSURL      string        `env:"JWKS_URL" envDefault:"https://www.googleapis.com/oauth2/v3/certs"`
	Timeout      time.Duration `env:"TIMEOUT" envDefault:"10s"`
}
