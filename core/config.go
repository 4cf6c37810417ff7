package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	APIConfig struct {
		BaseURL string
		Timeout time.Duration
	}

	PortalConfig struct {
		SessionFile   string
		SessionTTL    time.Duration
		RefreshWindow time.Duration
		RefreshLimit  time.Duration
	}

	LogConfig struct {
		File      string
		MaxSizeMB int
	}

	DevAPIConfig struct {
		Address         string
		ShutdownTimeout time.Duration
	}

	Config struct {
		Env          string
		Build        string
		Debug        bool
		TestMode     bool
		AppName      string
		SecretKey    string
		RollbarToken string

		// AttendanceEndpoint is the path attendance sheets are posted to.
		// Empty means attendance saves are simulated.
		AttendanceEndpoint string

		API    APIConfig
		Portal PortalConfig
		Log    LogConfig
		DevAPI DevAPIConfig
	}
)

// NewConfig loads the configuration from defaults, the optional `config/.env.<env>` file and the environment.
// Environment variables are prefixed by the upper-cased ENV (DEV by default), e.g. DEV_API_BASEURL.
func NewConfig() *Config {
	conf := viper.New()

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("build", "develop")
	conf.SetDefault("debug", true)
	conf.SetDefault("testMode", false)
	conf.SetDefault("appName", "SGE")
	conf.SetDefault("secretKey", "k8#d2-tq$w9)m!ve4=zr&u1xp(hb^c7@sgn0o5jya+6lf3i")
	conf.SetDefault("rollbarToken", "")
	conf.SetDefault("attendance.endpoint", "")
	conf.SetDefault("api.baseURL", "http://localhost:8000/api")
	conf.SetDefault("api.timeout", 15*time.Second)
	conf.SetDefault("portal.sessionFile", filepath.Join(os.TempDir(), "sge-portal-session"))
	conf.SetDefault("portal.sessionTTL", 8*time.Hour)
	conf.SetDefault("portal.refreshWindow", 30*time.Minute)
	conf.SetDefault("portal.refreshLimit", 7*24*time.Hour)
	conf.SetDefault("log.file", "")
	conf.SetDefault("log.maxSizeMB", 10)
	conf.SetDefault("devapi.address", ":8000")
	conf.SetDefault("devapi.shutdownTimeout", 5*time.Second)

	env := strings.ToUpper(os.Getenv("ENV")) // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		conf.SetDefault("testMode", true)
	}
	conf.SetEnvPrefix(env)
	conf.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	conf.AutomaticEnv()

	return &Config{
		Env:                env,
		Build:              conf.GetString("build"),
		Debug:              conf.GetBool("debug"),
		TestMode:           conf.GetBool("testMode"),
		AppName:            conf.GetString("appName"),
		SecretKey:          conf.GetString("secretKey"),
		RollbarToken:       conf.GetString("rollbarToken"),
		AttendanceEndpoint: conf.GetString("attendance.endpoint"),
		API: APIConfig{
			BaseURL: strings.TrimRight(conf.GetString("api.baseURL"), "/"),
			Timeout: conf.GetDuration("api.timeout"),
		},
		Portal: PortalConfig{
			SessionFile:   conf.GetString("portal.sessionFile"),
			SessionTTL:    conf.GetDuration("portal.sessionTTL"),
			RefreshWindow: conf.GetDuration("portal.refreshWindow"),
			RefreshLimit:  conf.GetDuration("portal.refreshLimit"),
		},
		Log: LogConfig{
			File:      conf.GetString("log.file"),
			MaxSizeMB: conf.GetInt("log.maxSizeMB"),
		},
		DevAPI: DevAPIConfig{
			Address:         conf.GetString("devapi.address"),
			ShutdownTimeout: conf.GetDuration("devapi.shutdownTimeout"),
		},
	}
}
