package types

type Config struct {
	Environment     string `envconfig:"ENVIRONMENT" default:"development"`
	ServerPort      uint   `envconfig:"SERVER_PORT" default:"8080"`
	ReadTimeoutSec  uint   `envconfig:"READ_TIMEOUT_SEC" default:"10"`
	WriteTimeoutSec uint   `envconfig:"WRITE_TIMEOUT_SEC" default:"15"`

	// Publishing API
	PublishingAPIURL         string `envconfig:"PUBLISHING_API_URL" default:"http://localhost:3093"`
	PublishingAPIBearerToken string `envconfig:"PUBLISHING_API_BEARER_TOKEN"`

	// Flash cookie signing key (base64 encoded)
	// openssl rand -base64 32
	// to generate a value
	CookieHashKey string `envconfig:"COOKIE_HASH_KEY"` // 32 or 64 bytes

	NeedsPerPage int `envconfig:"NEEDS_PER_PAGE" default:"50"`
}
