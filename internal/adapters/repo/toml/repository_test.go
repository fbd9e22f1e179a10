package toml

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/bnema/petwatch/internal/domain"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) (*Repository, string) {
	t.Helper()

	journalPath := filepath.Join(t.TempDir(), "journal.toml")
	config := viper.New()
	config.Set("journal.path", journalPath)

	repo, err := NewRepository(config)
	require.NoError(t, err)
	return repo, journalPath
}

func testObservation(id string, capturedAt time.Time) domain.Observation {
	return domain.Observation{
		ID:                 domain.ObservationID(id),
		CapturedAt:         capturedAt,
		Model:              "gpt-4o",
		SnapshotBytes:      2048,
		PetPresent:         true,
		Location:           "on the rug",
		Activity:           "chewing a toy",
		Danger:             true,
		DangerDetails:      "grapes on the coffee table",
		Obstruction:        false,
		ObstructionDetails: "",
		Assessment:         "Needs attention.",
	}
}

func TestJournalRoundTrip(t *testing.T) {
	t.Parallel()

	repo, _ := newTestRepository(t)
	now := time.Date(2026, 8, 25, 14, 30, 0, 0, time.UTC)

	first := testObservation("obs-1", now.Add(-time.Hour))
	second := testObservation("obs-2", now)

	require.NoError(t, repo.Append(context.Background(), first))
	require.NoError(t, repo.Append(context.Background(), second))

	latest, err := repo.Latest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, second, latest)

	observations, err := repo.List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, observations, 2)
	assert.Equal(t, second, observations[0])
	assert.Equal(t, first, observations[1])
}

func TestJournalListHonorsLimit(t *testing.T) {
	t.Parallel()

	repo, _ := newTestRepository(t)
	now := time.Date(2026, 8, 25, 14, 30, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		observation := testObservation("obs", now.Add(time.Duration(i)*time.Minute))
		observation.ID = domain.ObservationID(string(rune('a' + i)))
		require.NoError(t, repo.Append(context.Background(), observation))
	}

	observations, err := repo.List(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, observations, 2)
	assert.Equal(t, domain.ObservationID("e"), observations[0].ID)
	assert.Equal(t, domain.ObservationID("d"), observations[1].ID)
}

func TestJournalLatestOnEmptyJournal(t *testing.T) {
	t.Parallel()

	repo, _ := newTestRepository(t)

	_, err := repo.Latest(context.Background())
	require.ErrorIs(t, err, domain.ErrObservationNotFound)

	observations, err := repo.List(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, observations)
}

func TestJournalAlertRoundTrip(t *testing.T) {
	t.Parallel()

	repo, _ := newTestRepository(t)
	now := time.Date(2026, 8, 25, 14, 30, 0, 0, time.UTC)

	_, err := repo.LastAlert(context.Background(), domain.AlertDanger)
	require.ErrorIs(t, err, domain.ErrAlertNotFound)

	alert := domain.Alert{
		Kind:    domain.AlertDanger,
		Message: "Safety concern: grapes on the coffee table",
		SentAt:  now,
	}
	require.NoError(t, repo.RecordAlert(context.Background(), alert))

	got, err := repo.LastAlert(context.Background(), domain.AlertDanger)
	require.NoError(t, err)
	assert.Equal(t, alert, got)

	// Recording the same kind again replaces the entry.
	later := alert
	later.SentAt = now.Add(time.Hour)
	require.NoError(t, repo.RecordAlert(context.Background(), later))

	got, err = repo.LastAlert(context.Background(), domain.AlertDanger)
	require.NoError(t, err)
	assert.Equal(t, later.SentAt, got.SentAt)

	_, err = repo.LastAlert(context.Background(), domain.AlertObstruction)
	require.ErrorIs(t, err, domain.ErrAlertNotFound)
}

func TestJournalCapsEntries(t *testing.T) {
	t.Parallel()

	repo, _ := newTestRepository(t)
	now := time.Date(2026, 8, 25, 14, 30, 0, 0, time.UTC)

	for i := 0; i < maxJournalEntries+3; i++ {
		observation := domain.Observation{
			ID:         domain.ObservationID(strconv.Itoa(i)),
			CapturedAt: now.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, repo.Append(context.Background(), observation))
	}

	observations, err := repo.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, observations, maxJournalEntries)

	latest, err := repo.Latest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Duration(maxJournalEntries+2)*time.Minute), latest.CapturedAt)
}

func TestJournalRejectsNewerSchemaVersion(t *testing.T) {
	t.Parallel()

	journalPath := filepath.Join(t.TempDir(), "journal.toml")
	require.NoError(t, os.WriteFile(journalPath, []byte("version = 99\n"), 0o600))

	config := viper.New()
	config.Set("journal.path", journalPath)
	repo, err := NewRepository(config)
	require.NoError(t, err)

	_, err = repo.Latest(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported journal schema version")
}

func TestJournalFilePermissions(t *testing.T) {
	t.Parallel()

	repo, journalPath := newTestRepository(t)

	require.NoError(t, repo.Append(context.Background(), testObservation("obs-1", time.Now().UTC().Truncate(time.Second))))

	info, err := os.Stat(journalPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(journalFileMode), info.Mode().Perm())
}
