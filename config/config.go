package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// insecureDevSecret só é aceito com ENV=development.
const insecureDevSecret = "imobiliaria-dev-secret-nao-use-em-producao"

// Config armazena todas as configurações da API Imobiliária.
type Config struct {
	// Geral
	Port           string
	Environment    string
	LogLevel       string
	RequestTimeout time.Duration
	AutoMigrate    bool

	// Banco de Dados (PostgreSQL)
	DatabaseURL string
	DBTimeout   time.Duration

	// Cache (Redis)
	RedisAddr string
	CacheTTL  time.Duration

	// Segurança (JWT)
	JWTSecretKey      string
	JWTSecretInsecure bool

	// Uploads de fotos
	UploadsDir     string
	MaxUploadFiles int
	MaxUploadSize  int64 // bytes por arquivo

	// CORS
	CORSAllowedOrigins []string

	// Rate Limiting
	RateLimitMaxRequests int
	RateLimitPeriod      time.Duration
}

// LoadConfig carrega as configurações a partir das variáveis de ambiente.
func LoadConfig() *Config {
	cfg := &Config{
		Port:           getEnv("PORT", "3001"),
		Environment:    getEnv("ENV", "production"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		RequestTimeout: getDurationEnv("REQUEST_TIMEOUT_SEC", 5) * time.Second,
		AutoMigrate:    getBoolEnv("AUTO_MIGRATE", false),

		// mustGetEnv garante que a aplicação não inicie sem credenciais de DB
		DatabaseURL: mustGetEnv("DATABASE_URL"),
		DBTimeout:   getDurationEnv("DB_TIMEOUT_SEC", 5) * time.Second,

		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
		CacheTTL:  getDurationEnv("CACHE_TTL_SEC", 300) * time.Second,

		UploadsDir:     getEnv("UPLOADS_DIR", "./uploads"),
		MaxUploadFiles: getIntEnv("MAX_UPLOAD_FILES", 10),
		MaxUploadSize:  int64(getIntEnv("MAX_UPLOAD_SIZE_MB", 5)) * 1024 * 1024,

		CORSAllowedOrigins: getListEnv("CORS_ALLOWED_ORIGINS", []string{
			"http://localhost:5173",
			"http://localhost:3000",
			"http://localhost:8081",
			"http://localhost:19006",
		}),

		RateLimitMaxRequests: getIntEnv("RATE_LIMIT_MAX_REQUESTS", 100),
		RateLimitPeriod:      getDurationEnv("RATE_LIMIT_PERIOD_MIN", 1) * time.Minute,
	}

	cfg.JWTSecretKey, cfg.JWTSecretInsecure = resolveJWTSecret(cfg.Environment)

	return cfg
}

// IsDevelopment informa se a aplicação roda em ambiente de desenvolvimento.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// resolveJWTSecret exige JWT_SECRET_KEY fora de desenvolvimento.
// Só com ENV=development explícito aceita o segredo padrão, sinalizado como inseguro.
func resolveJWTSecret(env string) (string, bool) {
	if value, exists := os.LookupEnv("JWT_SECRET_KEY"); exists && value != "" {
		return value, false
	}
	if env == "development" {
		log.Println("⚠️ Aviso: JWT_SECRET_KEY não definida. Usando segredo padrão INSEGURO (apenas desenvolvimento).")
		return insecureDevSecret, true
	}
	return mustGetEnv("JWT_SECRET_KEY"), false
}

// Funções Helpers (Auxiliares)

// getEnv lê a variável de ambiente ou retorna um valor padrão.
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// fatalf é substituível em testes.
var fatalf = log.Fatalf

// mustGetEnv lê a variável de ambiente, fatal se não estiver presente.
func mustGetEnv(key string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	fatalf("❌ Erro de Configuração: A variável de ambiente %s deve ser definida.", key)
	return ""
}

// getDurationEnv lê uma variável de ambiente numérica e retorna-a como time.Duration.
func getDurationEnv(key string, defaultValue int) time.Duration {
	return time.Duration(getIntEnv(key, defaultValue))
}

// getIntEnv lê uma variável de ambiente numérica e retorna-a como int.
func getIntEnv(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil || value < 0 {
		log.Printf("⚠️ Aviso: Valor de %s ('%s') não é um número inteiro válido. Usando padrão (%d).", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

// getBoolEnv lê uma variável booleana ("true", "1", ...).
func getBoolEnv(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("⚠️ Aviso: Valor de %s ('%s') não é booleano. Usando padrão (%t).", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

// getListEnv lê uma lista separada por vírgulas.
func getListEnv(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	var out []string
	for _, item := range strings.Split(valueStr, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
