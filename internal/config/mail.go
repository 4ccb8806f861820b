package config

type Mail struct {
	// Host left empty disables outgoing notifications.
	Host     string `env:"HOST"`
	Port     int    `env:"PORT" envDefault:"465"`
	Username string `env:"USERNAME"`
	Password string `env:"PASSWORD"`
	From     string `env:"DEFAULT_SENDER,expand"`
}
