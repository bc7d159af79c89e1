package config

import "time"

// Config holds application configuration.
type Config struct {
	DatabaseURL string `env:"DATABASE_URL"`
	// MarketsFile overrides embedded market table when set.
	MarketsFile string        `env:"MARKETS_FILE"`
	Workers     int           `env:"WORKERS" envDefault:"8"`
	FXTTL       time.Duration `env:"FX_TTL" envDefault:"2h"`
	// PlayStationGraphQL enables concept price lookups in PlayStation GraphQL API.
	PlayStationGraphQL bool `env:"PS_GRAPHQL" envDefault:"true"`

	HTTP     HTTP
	RabbitMQ RabbitMQ
}

// HTTP holds storefront client configuration.
type HTTP struct {
	Timeout         time.Duration `env:"HTTP_TIMEOUT" envDefault:"12s"`
	Retries         int           `env:"HTTP_RETRIES" envDefault:"1"`
	Backoff         time.Duration `env:"HTTP_BACKOFF" envDefault:"350ms"`
	UserAgent       string        `env:"USER_AGENT" envDefault:"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"`
	MaxBodyBytes    int64         `env:"HTTP_MAX_BODY_BYTES" envDefault:"8388608"`
	RateLimitCount  int           `env:"RATE_LIMIT_REQUESTS" envDefault:"0"`
	RateLimitWindow time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"1s"`
}

// RabbitMQ holds RabbitMQ configuration.
type RabbitMQ struct {
	URL        string `env:"RABBITMQ_URL"`
	Exchange   string `env:"RABBITMQ_EXCHANGE" envDefault:"gpp-ex"`
	Queue      string `env:"RABBITMQ_QUEUE" envDefault:"game-price-puller.commands"`
	CommandKey string `env:"RABBITMQ_COMMAND_KEY" envDefault:"gpp.cmd.pull"`
	SummaryKey string `env:"RABBITMQ_SUMMARY_KEY" envDefault:"gpp.evt.summary"`
	Prefetch   int    `env:"RABBITMQ_PREFETCH" envDefault:"1"`
}
