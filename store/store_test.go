package store

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestStore opens an in-memory database and migrates the schema.
// The database lives on a single pooled connection so it survives for
// the whole test.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	// Postgres LIKE is case-sensitive; sqlite's is not unless told so.
	require.NoError(t, db.Exec("PRAGMA case_sensitive_like = ON").Error)

	require.NoError(t, DatabaseSetupAndMigration(db))
	return NewStore(db)
}

func TestFormatTimePosted(t *testing.T) {
	posted := time.Date(1997, 8, 29, 2, 14, 0, 0, time.UTC)
	assert.Equal(t, "1997-08-29T02:14:00+0000", formatTimePosted(posted))
}

func TestParsePostedTime(t *testing.T) {
	for _, value := range []string{
		"2020-01-01T10:30:00Z",
		"2020-01-01 10:30:00",
		"Wed Jan 01 10:30:00 +0000 2020",
	} {
		parsed, err := parsePostedTime(value)
		require.NoError(t, err, value)
		assert.Equal(t, time.Date(2020, 1, 1, 10, 30, 0, 0, time.UTC), parsed, value)
	}

	_, err := parsePostedTime("not a date")
	assert.ErrorIs(t, err, ErrInvalidPayload)
}

func TestTweetIdUnmarshal(t *testing.T) {
	var data TweetData

	require.NoError(t, json.Unmarshal([]byte(`{"tweet_id": 1234}`), &data))
	assert.Equal(t, TweetId(1234), data.TweetId)

	require.NoError(t, json.Unmarshal([]byte(`{"tweet_id": "5678"}`), &data))
	assert.Equal(t, TweetId(5678), data.TweetId)

	assert.Error(t, json.Unmarshal([]byte(`{"tweet_id": "nope"}`), &data))

	encoded, err := json.Marshal(TweetId(91011))
	require.NoError(t, err)
	assert.Equal(t, "91011", string(encoded))
}

func TestTweetDataValidate(t *testing.T) {
	valid := &TweetData{
		UserName:     "NASA",
		TweetId:      100,
		Url:          "https://twitter.com/NASA/status/100",
		TweetText:    "hello",
		TweetCreated: "2020-01-01T00:00:00Z",
	}
	assert.NoError(t, valid.Validate())

	missingUser := *valid
	missingUser.UserName = ""
	assert.ErrorIs(t, missingUser.Validate(), ErrInvalidPayload)

	retweetWithoutOriginal := *valid
	retweetWithoutOriginal.IsRetweet = true
	assert.ErrorIs(t, retweetWithoutOriginal.Validate(), ErrInvalidPayload)
}
