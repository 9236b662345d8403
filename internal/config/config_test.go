package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// allConfigKeys lists every env var that Load() reads.
var allConfigKeys = []string{
	"FIRST_EMAIL",
	"FIRST_PASSWORD",
	"SECOND_EMAIL",
	"SECOND_PASSWORD",
	"AGENCYSAMPLER_API_BASE_URL",
	"AGENCYSAMPLER_AGENCY_FILE",
	"AGENCYSAMPLER_OUTPUT_FILE",
	"AGENCYSAMPLER_LOG_FILE",
	"AGENCYSAMPLER_DB_PATH",
	"AGENCYSAMPLER_PAGE_LIMIT",
	"AGENCYSAMPLER_MAX_HITS",
	"AGENCYSAMPLER_MAX_RETRIES",
	"AGENCYSAMPLER_REQUEST_DELAY",
	"AGENCYSAMPLER_INCLUDE_EMPTY",
	"AGENCYSAMPLER_START_DATE",
	"AGENCYSAMPLER_END_DATE",
}

// isolateConfigEnv unsets every config env var and points HOME at an empty
// temp dir so tests inherit neither host environment nor a developer's
// ~/.agencysampler/config.yaml. t.Cleanup restores originals.
func isolateConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range allConfigKeys {
		if orig, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { os.Setenv(key, orig) })
		} else {
			t.Cleanup(func() { os.Unsetenv(key) })
		}
		os.Unsetenv(key)
	}
	t.Setenv("HOME", t.TempDir())
}

func TestLoad_Success(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("FIRST_EMAIL", "alice@example.org")
	t.Setenv("FIRST_PASSWORD", "hunter2")
	t.Setenv("SECOND_EMAIL", "bob@example.org")
	t.Setenv("SECOND_PASSWORD", "swordfish")
	t.Setenv("AGENCYSAMPLER_API_BASE_URL", "https://archive.test/api")
	t.Setenv("AGENCYSAMPLER_AGENCY_FILE", "agencies.txt")
	t.Setenv("AGENCYSAMPLER_OUTPUT_FILE", "out.json")
	t.Setenv("AGENCYSAMPLER_LOG_FILE", "run.log")
	t.Setenv("AGENCYSAMPLER_DB_PATH", "/tmp/journal.db")
	t.Setenv("AGENCYSAMPLER_PAGE_LIMIT", "50")
	t.Setenv("AGENCYSAMPLER_MAX_HITS", "200")
	t.Setenv("AGENCYSAMPLER_MAX_RETRIES", "5")
	t.Setenv("AGENCYSAMPLER_REQUEST_DELAY", "250ms")
	t.Setenv("AGENCYSAMPLER_INCLUDE_EMPTY", "false")
	t.Setenv("AGENCYSAMPLER_START_DATE", "1900-01-01")
	t.Setenv("AGENCYSAMPLER_END_DATE", "2000-12-31")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "alice@example.org", cfg.FirstEmail)
	assert.Equal(t, "hunter2", cfg.FirstPassword)
	assert.Equal(t, "bob@example.org", cfg.SecondEmail)
	assert.Equal(t, "swordfish", cfg.SecondPassword)
	assert.True(t, cfg.HasSecondaryCredentials())
	assert.Equal(t, "https://archive.test/api", cfg.APIBaseURL)
	assert.Equal(t, "agencies.txt", cfg.AgencyFile)
	assert.Equal(t, "out.json", cfg.OutputFile)
	assert.Equal(t, "run.log", cfg.LogFile)
	assert.Equal(t, "/tmp/journal.db", cfg.DBPath)
	assert.Equal(t, 50, cfg.PageLimit)
	assert.Equal(t, 200, cfg.MaxHits)
	assert.Equal(t, 5, cfg.MaxRetries)
	assert.Equal(t, 250*time.Millisecond, cfg.RequestDelay)
	assert.False(t, cfg.IncludeEmpty)
	assert.Equal(t, "1900-01-01", cfg.StartDate)
	assert.Equal(t, "2000-12-31", cfg.EndDate)
}

func TestLoad_Defaults(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("FIRST_EMAIL", "alice@example.org")
	t.Setenv("FIRST_PASSWORD", "hunter2")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, DefaultAPIBaseURL, cfg.APIBaseURL)
	assert.Equal(t, DefaultAgencyFile, cfg.AgencyFile)
	assert.Equal(t, DefaultOutputFile, cfg.OutputFile)
	assert.Equal(t, DefaultLogFile, cfg.LogFile)
	assert.Equal(t, DefaultDBPath, cfg.DBPath)
	assert.Equal(t, DefaultPageLimit, cfg.PageLimit)
	assert.Equal(t, DefaultMaxHits, cfg.MaxHits)
	assert.Equal(t, DefaultMaxRetries, cfg.MaxRetries)
	assert.Equal(t, DefaultRequestDelay, cfg.RequestDelay)
	assert.True(t, cfg.IncludeEmpty)
	assert.Empty(t, cfg.StartDate)
	assert.Empty(t, cfg.EndDate)
}

func TestLoad_MissingFirstEmail(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("FIRST_PASSWORD", "hunter2")

	cfg, err := Load()

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FIRST_EMAIL")
}

func TestLoad_MissingFirstPassword(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("FIRST_EMAIL", "alice@example.org")

	cfg, err := Load()

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FIRST_PASSWORD")
}

// TestLoad_SecondaryAbsent verifies that omitting the secondary login pair is
// valid: only a primary token will be acquired.
func TestLoad_SecondaryAbsent(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("FIRST_EMAIL", "alice@example.org")
	t.Setenv("FIRST_PASSWORD", "hunter2")

	cfg, err := Load()

	require.NoError(t, err)
	assert.False(t, cfg.HasSecondaryCredentials())
}

func TestLoad_SecondaryPairIncomplete(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("FIRST_EMAIL", "alice@example.org")
	t.Setenv("FIRST_PASSWORD", "hunter2")
	t.Setenv("SECOND_EMAIL", "bob@example.org")

	cfg, err := Load()

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SECOND_EMAIL and SECOND_PASSWORD")
}

func TestLoad_InvalidRequestDelay(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("FIRST_EMAIL", "alice@example.org")
	t.Setenv("FIRST_PASSWORD", "hunter2")
	t.Setenv("AGENCYSAMPLER_REQUEST_DELAY", "not-a-duration")

	cfg, err := Load()

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AGENCYSAMPLER_REQUEST_DELAY")
}

func TestLoad_PageLimitOutOfRange(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("FIRST_EMAIL", "alice@example.org")
	t.Setenv("FIRST_PASSWORD", "hunter2")

	for _, v := range []string{"0", "101", "-1"} {
		t.Setenv("AGENCYSAMPLER_PAGE_LIMIT", v)

		cfg, err := Load()

		assert.Nil(t, cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "page limit")
	}
}

func TestLoad_InvalidIncludeEmpty(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("FIRST_EMAIL", "alice@example.org")
	t.Setenv("FIRST_PASSWORD", "hunter2")
	t.Setenv("AGENCYSAMPLER_INCLUDE_EMPTY", "maybe")

	cfg, err := Load()

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AGENCYSAMPLER_INCLUDE_EMPTY")
}

func TestLoad_InvalidStartDate(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("FIRST_EMAIL", "alice@example.org")
	t.Setenv("FIRST_PASSWORD", "hunter2")
	t.Setenv("AGENCYSAMPLER_START_DATE", "01/01/1900")

	cfg, err := Load()

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "YYYY-MM-DD")
}
