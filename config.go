package assets

import (
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/spf13/viper"
)

// Config holds process configuration, read once at startup.
type Config struct {
	// WorkbookPath locates the spreadsheet backing the credential and
	// asset tables.
	WorkbookPath string `mapstructure:"ASSETS_WORKBOOK"`
	// DatabaseDSN optionally points at a SQLite database instead of
	// the workbook. Empty keeps the workbook backend.
	DatabaseDSN string `mapstructure:"ASSETS_DB_DSN"`
	// SigningKey signs session tokens.
	SigningKey string `mapstructure:"ASSETS_SIGNING_KEY"`
	// TokenTTL is the session token lifetime (e.g. "12h").
	TokenTTL string `mapstructure:"ASSETS_TOKEN_TTL"`
	// Issuer is the iss claim on session tokens.
	Issuer string `mapstructure:"ASSETS_ISSUER"`
	// HTTPAddr is the address the HTTP surface listens on.
	HTTPAddr string `mapstructure:"ASSETS_HTTP_ADDR"`
}

// TokenDuration parses TokenTTL.
func (c *Config) TokenDuration() (time.Duration, error) {
	d, err := time.ParseDuration(c.TokenTTL)
	if err != nil {
		return 0, goerrors.Wrap(err, goerrors.CategoryBadInput, "invalid ASSETS_TOKEN_TTL").
			WithCode(goerrors.CodeBadRequest)
	}
	return d, nil
}

// LoadConfig reads an optional .env file, then lets environment
// variables override it. Missing .env is not an error (e.g. CI).
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(".env")
}

// LoadConfigFrom reads configuration from the given file path.
func LoadConfigFrom(path string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(path)
	v.SetConfigType("env")
	_ = v.ReadInConfig() // ignore ErrConfigFileNotFound

	v.AutomaticEnv()

	v.SetDefault("ASSETS_WORKBOOK", "assets.xlsx")
	v.SetDefault("ASSETS_DB_DSN", "")
	v.SetDefault("ASSETS_SIGNING_KEY", "")
	v.SetDefault("ASSETS_TOKEN_TTL", "12h")
	v.SetDefault("ASSETS_ISSUER", "go-assets")
	v.SetDefault("ASSETS_HTTP_ADDR", ":3000")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryBadInput, "failed to decode configuration").
			WithCode(goerrors.CodeBadRequest)
	}

	if cfg.WorkbookPath == "" && cfg.DatabaseDSN == "" {
		return nil, goerrors.New("config: ASSETS_WORKBOOK or ASSETS_DB_DSN must be set", goerrors.CategoryBadInput).
			WithCode(goerrors.CodeBadRequest)
	}

	if _, err := cfg.TokenDuration(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
