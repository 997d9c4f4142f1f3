package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"cadence/internal/core/ledger"
	"cadence/internal/core/model"
)

const sessionsFileName = "sessions.yaml"

type yamlSession struct {
	Description     string `yaml:"description"`
	StartedAt       string `yaml:"started_at"`
	StoppedAt       string `yaml:"stopped_at,omitempty"`
	DurationSeconds int    `yaml:"duration_seconds"`
}

type yamlLedger struct {
	Completed []yamlSession `yaml:"completed"`
	Current   *yamlSession  `yaml:"current,omitempty"`
}

// LedgerStore persists ledger state to a YAML file. It implements
// ledger.Store.
type LedgerStore struct {
	path string
}

// NewLedgerStore creates a store writing to the given file path.
func NewLedgerStore(path string) *LedgerStore {
	return &LedgerStore{path: path}
}

// LedgerPath returns the default sessions file path for the application.
func LedgerPath(appName string) (string, error) {
	return resolveConfigPath(appName, sessionsFileName)
}

// Load reads persisted ledger state. A missing file yields an empty state.
func (store *LedgerStore) Load() (ledger.State, error) {
	var state ledger.State

	rawData, err := os.ReadFile(store.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return state, nil
		}
		return state, fmt.Errorf("read sessions file: %w", err)
	}

	var fileData yamlLedger
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return state, fmt.Errorf("parse sessions yaml: %w", err)
	}

	for _, row := range fileData.Completed {
		session, err := sessionFromYaml(row)
		if err != nil {
			return ledger.State{}, err
		}
		state.Completed = append(state.Completed, session)
	}
	if fileData.Current != nil {
		session, err := sessionFromYaml(*fileData.Current)
		if err != nil {
			return ledger.State{}, err
		}
		state.Current = &session
	}
	return state, nil
}

// Save writes ledger state, creating the config directory if needed.
func (store *LedgerStore) Save(state ledger.State) error {
	if err := os.MkdirAll(filepath.Dir(store.path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	var fileData yamlLedger
	for _, session := range state.Completed {
		fileData.Completed = append(fileData.Completed, sessionToYaml(session))
	}
	if state.Current != nil {
		row := sessionToYaml(*state.Current)
		fileData.Current = &row
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal sessions yaml: %w", err)
	}

	if err := os.WriteFile(store.path, serialized, 0o644); err != nil {
		return fmt.Errorf("write sessions file: %w", err)
	}
	return nil
}

func sessionToYaml(session model.Session) yamlSession {
	row := yamlSession{
		Description:     session.Description,
		StartedAt:       session.StartedAt.Format(time.RFC3339),
		DurationSeconds: session.DurationSeconds,
	}
	if !session.StoppedAt.IsZero() {
		row.StoppedAt = session.StoppedAt.Format(time.RFC3339)
	}
	return row
}

func sessionFromYaml(row yamlSession) (model.Session, error) {
	startedAt, err := time.Parse(time.RFC3339, row.StartedAt)
	if err != nil {
		return model.Session{}, fmt.Errorf("parse session start: %w", err)
	}
	session := model.Session{
		Description:     row.Description,
		StartedAt:       startedAt,
		DurationSeconds: row.DurationSeconds,
	}
	if row.StoppedAt != "" {
		stoppedAt, err := time.Parse(time.RFC3339, row.StoppedAt)
		if err != nil {
			return model.Session{}, fmt.Errorf("parse session stop: %w", err)
		}
		session.StoppedAt = stoppedAt
	}
	return session, nil
}
