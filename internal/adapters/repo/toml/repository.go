package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bnema/petwatch/internal/domain"
	"github.com/bnema/petwatch/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	configName        = "config"
	configType        = "toml"
	journalPathKey    = "journal.path"
	journalFileMode   = 0o600
	journalDirMode    = 0o700
	journalConfigDir  = ".petwatch"
	journalConfigFile = "journal.toml"
	tempFilePattern   = ".journal-*.toml.tmp"

	// Oldest observations are dropped past this count.
	maxJournalEntries = 500
)

type Repository struct {
	journalPath string
	mu          *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.Journal = (*Repository)(nil)

func NewRepository(cfg *viper.Viper) (*Repository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	defaultPath := filepath.Join(homeDir, journalConfigDir, journalConfigFile)

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(filepath.Join(homeDir, journalConfigDir))
	cfg.SetDefault(journalPathKey, defaultPath)

	err = cfg.ReadInConfig()
	if err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	journalPath := cfg.GetString(journalPathKey)
	if journalPath == "" {
		return nil, errors.New("journal path is empty")
	}
	journalPath, err = normalizeJournalPath(journalPath)
	if err != nil {
		return nil, err
	}

	return &Repository{journalPath: journalPath, mu: lockForPath(journalPath)}, nil
}

func (r *Repository) Append(ctx context.Context, observation domain.Observation) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}
	file.applyDefaults()

	file.Observations = append(file.Observations, toSchema(observation))
	if overflow := len(file.Observations) - maxJournalEntries; overflow > 0 {
		file.Observations = file.Observations[overflow:]
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	return r.writeSchema(file)
}

func (r *Repository) Latest(ctx context.Context) (domain.Observation, error) {
	if err := ctx.Err(); err != nil {
		return domain.Observation{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return domain.Observation{}, err
	}
	file.applyDefaults()

	if len(file.Observations) == 0 {
		return domain.Observation{}, domain.ErrObservationNotFound
	}

	return fromSchema(file.Observations[len(file.Observations)-1]), nil
}

func (r *Repository) List(ctx context.Context, limit int) ([]domain.Observation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return nil, err
	}
	file.applyDefaults()

	count := len(file.Observations)
	if limit > 0 && limit < count {
		count = limit
	}

	// Newest first.
	observations := make([]domain.Observation, 0, count)
	for i := len(file.Observations) - 1; i >= 0 && len(observations) < count; i-- {
		observations = append(observations, fromSchema(file.Observations[i]))
	}

	return observations, nil
}

func (r *Repository) LastAlert(ctx context.Context, kind domain.AlertKind) (domain.Alert, error) {
	if err := ctx.Err(); err != nil {
		return domain.Alert{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return domain.Alert{}, err
	}
	file.applyDefaults()

	for _, entry := range file.LastAlerts {
		if entry.Kind == string(kind) {
			return fromAlertSchema(entry), nil
		}
	}

	return domain.Alert{}, domain.ErrAlertNotFound
}

func (r *Repository) RecordAlert(ctx context.Context, alert domain.Alert) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}
	file.applyDefaults()

	encoded := toAlertSchema(alert)
	updated := false
	for i := range file.LastAlerts {
		if file.LastAlerts[i].Kind == encoded.Kind {
			file.LastAlerts[i] = encoded
			updated = true
			break
		}
	}

	if !updated {
		file.LastAlerts = append(file.LastAlerts, encoded)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	return r.writeSchema(file)
}

func (r *Repository) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(r.journalPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileSchema{}, nil
		}
		return fileSchema{}, fmt.Errorf("read journal file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode journal file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func (r *Repository) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(r.journalPath), journalDirMode); err != nil {
		return fmt.Errorf("create journal directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode journal file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(r.journalPath), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp journal file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp journal file: %w", err)
	}

	if err := tempFile.Chmod(journalFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp journal file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp journal file: %w", err)
	}

	if err := os.Rename(tempName, r.journalPath); err != nil {
		return fmt.Errorf("replace journal file: %w", err)
	}

	cleanup = false

	if err := os.Chmod(r.journalPath, journalFileMode); err != nil {
		return fmt.Errorf("chmod journal file: %w", err)
	}

	return nil
}

func normalizeJournalPath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve journal path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}
