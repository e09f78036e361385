package config

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	KeyHTTPPort        = "http.port"
	KeyDBPath          = "db.path"
	KeySessionSecret   = "session.secret"
	KeySessionTTLHours = "session.ttl_hours"
	KeyAdminUsername   = "admin.username"
	KeyAdminPassword   = "admin.password"
)

type Config struct {
	HTTP    HTTPConfig    `mapstructure:"http"`
	DB      DBConfig      `mapstructure:"db"`
	Session SessionConfig `mapstructure:"session" validate:"required"`
	Admin   AdminConfig   `mapstructure:"admin"`
}

type HTTPConfig struct {
	Port int `mapstructure:"port" validate:"gte=1,lte=65535"`
}

type DBConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

type SessionConfig struct {
	Secret   string `mapstructure:"secret" validate:"required"`
	TTLHours int    `mapstructure:"ttl_hours" validate:"gte=1"`
}

// AdminConfig seeds the bootstrap supervisor credential when the user table
// is empty. The password is hashed before it touches storage.
type AdminConfig struct {
	Username string `mapstructure:"username" validate:"required"`
	Password string `mapstructure:"password" validate:"required"`
}

func (c SessionConfig) TTL() time.Duration {
	return time.Duration(c.TTLHours) * time.Hour
}

// SetDefaults sets default values if not provided
func SetDefaults() {
	setDefaults(viper.GetViper())
}

// LoadAndValidate loads config from Viper and validates it
func LoadAndValidate() (*Config, error) {
	return loadAndValidateFromViper(viper.GetViper())
}

// ValidateYAMLContent validates configuration from raw YAML content.
func ValidateYAMLContent(content []byte) (*Config, error) {
	local := viper.New()
	setDefaults(local)
	local.SetConfigType("yaml")
	if err := local.ReadConfig(bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("read config content: %w", err)
	}
	return loadAndValidateFromViper(local)
}

// ExampleYAML returns the default configuration template.
func ExampleYAML() string {
	return `# hourdesk configuration
http:
  port: 8080

db:
  path: "./hourdesk.db"

session:
  secret: "change-me"
  ttl_hours: 12

admin:
  username: "admin"
  password: "admin"
`
}

func loadAndValidateFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyHTTPPort, 8080)
	v.SetDefault(KeyDBPath, "./hourdesk.db")
	v.SetDefault(KeySessionSecret, "supersecret")
	v.SetDefault(KeySessionTTLHours, 12)
	v.SetDefault(KeyAdminUsername, "admin")
	v.SetDefault(KeyAdminPassword, "admin")

	v.SetEnvPrefix("HOURDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}
