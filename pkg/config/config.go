package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa a configuração da aplicação (lida via Viper do ambiente e, opcionalmente, de arquivo).
type Config struct {
	App        AppConfig
	Store      StoreConfig
	DB         DBConfig
	JWT        JWTConfig
	HTTP       HTTPConfig
	Compliance ComplianceConfig
}

// AppConfig configuração geral.
type AppConfig struct {
	Env                    string // development, staging, production
	Name                   string
	LogLevel               string
	BootstrapAdminPassword string // vazio = não cria o usuário admin
	CompanyName            string // cabeçalho do comprovante em PDF
}

// StoreConfig escolhe o backend de persistência.
type StoreConfig struct {
	Driver string // "postgres" | "memory"
}

// DBConfig configuração do PostgreSQL.
// Se DatabaseURL não estiver vazio, é usado como connection string completa.
type DBConfig struct {
	DatabaseURL  string
	Host         string
	Port         int
	User         string
	Password     string
	DBName       string
	SSLMode      string
	TxIsolation  string // serializable | repeatable_read | read_committed
	AutoMigrate  bool
	MaxConns     int
	QueryTimeout time.Duration
}

// ConnectionString devolve o DSN: DATABASE_URL se definido, senão o construído com DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devolve a connection string com URL encoding para caracteres especiais.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// JWTConfig configuração de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig configuração do servidor HTTP.
type HTTPConfig struct {
	Host            string
	Port            int
	CORSOrigins     []string
	RateLimitMax    int
	RateLimitWindow time.Duration
	BodyLimitBytes  int
	SwaggerFile     string
}

// Addr devolve o endereço de escuta (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ComplianceConfig fuso usado para "hoje à meia-noite local" na classificação de vencimentos.
type ComplianceConfig struct {
	Timezone string
}

// Location resolve o fuso; cai para UTC se o nome for inválido.
func (c ComplianceConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Load lê a configuração das variáveis de ambiente (e opcionalmente de arquivo).
// As env vars têm prioridade. Nomes esperados: APP_ENV, DB_HOST, JWT_SECRET, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: arquivo .env na raiz
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos erro se não existir

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.MergeInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:                    getString(v, "APP_ENV", "development"),
			Name:                   getString(v, "APP_NAME", "epi-control-api"),
			LogLevel:               getString(v, "LOG_LEVEL", "info"),
			BootstrapAdminPassword: getString(v, "BOOTSTRAP_ADMIN_PASSWORD", ""),
			CompanyName:            getString(v, "COMPANY_NAME", "Controle de EPI"),
		},
		Store: StoreConfig{
			Driver: getString(v, "STORE_DRIVER", "postgres"),
		},
		DB: DBConfig{
			DatabaseURL:  getString(v, "DATABASE_URL", ""),
			Host:         getString(v, "DB_HOST", "localhost"),
			Port:         getInt(v, "DB_PORT", 5432),
			User:         getString(v, "DB_USER", "postgres"),
			Password:     getString(v, "DB_PASSWORD", ""),
			DBName:       getString(v, "DB_NAME", "epi_control"),
			SSLMode:      getString(v, "DB_SSLMODE", "disable"),
			TxIsolation:  getString(v, "DB_TX_ISOLATION", "serializable"),
			AutoMigrate:  getBool(v, "DB_AUTO_MIGRATE", true),
			MaxConns:     getInt(v, "DB_MAX_CONNS", 25),
			QueryTimeout: time.Duration(getInt(v, "DB_QUERY_TIMEOUT_SECONDS", 10)) * time.Second,
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 720),
			Issuer:     getString(v, "JWT_ISSUER", "epi-control"),
		},
		HTTP: HTTPConfig{
			Host:            getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:            getInt(v, "HTTP_PORT", 3000),
			CORSOrigins:     splitList(getString(v, "CORS_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000")),
			RateLimitMax:    getInt(v, "RATE_LIMIT_MAX", 300),
			RateLimitWindow: time.Duration(getInt(v, "RATE_LIMIT_WINDOW_SECONDS", 900)) * time.Second,
			BodyLimitBytes:  getInt(v, "HTTP_BODY_LIMIT_BYTES", 1<<20),
			SwaggerFile:     getString(v, "SWAGGER_FILE", "./docs/swagger.json"),
		},
		Compliance: ComplianceConfig{
			Timezone: getString(v, "COMPLIANCE_TIMEZONE", "America/Sao_Paulo"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Store.Driver {
	case "postgres", "memory":
	default:
		return fmt.Errorf("config: STORE_DRIVER inválido %q", c.Store.Driver)
	}
	switch c.DB.TxIsolation {
	case "serializable", "repeatable_read", "read_committed":
	default:
		return fmt.Errorf("config: DB_TX_ISOLATION inválido %q", c.DB.TxIsolation)
	}
	if c.JWT.Secret == "" && c.App.Env == "production" {
		return fmt.Errorf("config: JWT_SECRET obrigatório em produção")
	}
	return nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
