package cmd

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/bnema/petwatch/internal/adapters/camera/httpcam"
	"github.com/bnema/petwatch/internal/adapters/notify/pushover"
	reportadapter "github.com/bnema/petwatch/internal/adapters/render/report"
	tomlrepo "github.com/bnema/petwatch/internal/adapters/repo/toml"
	visionopenai "github.com/bnema/petwatch/internal/adapters/vision/openai"
	"github.com/bnema/petwatch/internal/application"
	"github.com/bnema/petwatch/internal/domain"
	"github.com/bnema/petwatch/internal/ports"
	"github.com/spf13/viper"
)

const (
	defaultCameraURL       = "http://localhost:5000/snapshot/pet-cam.jpg"
	defaultCameraTimeout   = 10 * time.Second
	defaultAnalysisTimeout = 90 * time.Second
	defaultNotifyTimeout   = 15 * time.Second
)

type app struct {
	monitor         *application.Monitor
	reportRenderer  func(application.Report, reportadapter.RenderOptions) (string, error)
	historyRenderer func([]domain.Observation, reportadapter.RenderOptions) (string, error)
	now             func() time.Time
}

func wireApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	repo, err := tomlrepo.NewRepository(cfg)
	if err != nil {
		return nil, fmt.Errorf("wire observation journal: %w", err)
	}

	cameraTimeout := defaultCameraTimeout
	if seconds := cfg.GetInt("camera.timeout_seconds"); seconds > 0 {
		cameraTimeout = time.Duration(seconds) * time.Second
	}
	camera := httpcam.NewClient(
		envOrDefault("PETWATCH_CAMERA_URL", cfg.GetString("camera.url")),
		&http.Client{Timeout: cameraTimeout},
	)

	analyzer := visionopenai.NewClient(visionopenai.Config{
		APIKey:         os.Getenv("OPENAI_API_KEY"),
		BaseURL:        envOrDefault("PETWATCH_OPENAI_BASE_URL", visionopenai.DefaultBaseURL),
		Model:          envOrDefault("PETWATCH_VISION_MODEL", cfg.GetString("vision.model")),
		PetDescription: cfg.GetString("pet.description"),
	}, &http.Client{Timeout: defaultAnalysisTimeout})

	// Alerts stay off unless both Pushover credentials are present.
	var notifier ports.Notifier
	token := os.Getenv("PUSHOVER_TOKEN")
	userKey := os.Getenv("PUSHOVER_USER")
	if token != "" && userKey != "" {
		notifier = pushover.NewClient(
			token,
			userKey,
			envOrDefault("PETWATCH_PUSHOVER_BASE_URL", pushover.DefaultBaseURL),
			&http.Client{Timeout: defaultNotifyTimeout},
		)
	}

	cooldown := application.DefaultAlertCooldown
	if minutes := cfg.GetInt("alerts.cooldown_minutes"); minutes > 0 {
		cooldown = time.Duration(minutes) * time.Minute
	}

	return &app{
		monitor:         application.NewMonitor(camera, analyzer, repo, notifier, ports.SystemClock{}, cooldown),
		reportRenderer:  reportadapter.Render,
		historyRenderer: reportadapter.RenderHistory,
		now:             time.Now,
	}, nil
}

func loadConfig() (*viper.Viper, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	cfg := viper.New()
	cfg.SetConfigName("config")
	cfg.SetConfigType("toml")
	cfg.AddConfigPath(filepath.Join(homeDir, ".petwatch"))
	cfg.SetDefault("camera.url", defaultCameraURL)
	cfg.SetDefault("vision.model", visionopenai.DefaultModel)

	if err := cfg.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
