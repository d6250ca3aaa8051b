package store

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackedUsers(t *testing.T) {
	s := newTestStore(t)

	users, err := s.GetTrackedUsers()
	require.NoError(t, err)
	assert.Empty(t, users)

	require.NoError(t, s.BeginTrackingUser("NASA"))
	require.NoError(t, s.BeginTrackingUser("SpaceX"))

	users, err = s.GetTrackedUsers()
	require.NoError(t, err)
	assert.Equal(t, []string{"NASA", "SpaceX"}, users)

	tracked, err := s.IsUserTracked("NASA")
	require.NoError(t, err)
	assert.True(t, tracked)

	tracked, err = s.IsUserTracked("RoscosmosEN")
	require.NoError(t, err)
	assert.False(t, tracked)
}

func TestHasTweetsFrom(t *testing.T) {
	s := newTestStore(t)

	// Registration alone does not count as authorship.
	require.NoError(t, s.BeginTrackingUser("NASA"))
	has, err := s.HasTweetsFrom("NASA")
	require.NoError(t, err)
	assert.False(t, has)

	_, err = s.InsertTweetData(sampleTweet("NASA", 100))
	require.NoError(t, err)

	has, err = s.HasTweetsFrom("NASA")
	require.NoError(t, err)
	assert.True(t, has)
}

func TestLastTweetId(t *testing.T) {
	s := newTestStore(t)

	for _, id := range []int64{100, 205, 150} {
		tweet := sampleTweet("NASA", id)
		tweet.Url = fmt.Sprintf("https://twitter.com/NASA/status/%d", id)
		_, err := s.InsertTweetData(tweet)
		require.NoError(t, err)
	}

	lastId, found, err := s.LastTweetId("NASA")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, int64(205), lastId)
}

func TestLastTweetIdUntrackedUser(t *testing.T) {
	s := newTestStore(t)

	_, found, err := s.LastTweetId("RoscosmosEN")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestGetTweetDataByIdAbsent(t *testing.T) {
	s := newTestStore(t)

	data, err := s.GetTweetDataById(424242)
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestSearchCountOfUserTweetsOnDay(t *testing.T) {
	s := newTestStore(t)

	insert := func(userName string, tweetId int64, created, text string) {
		t.Helper()
		tweet := sampleTweet(userName, tweetId)
		tweet.TweetCreated = created
		tweet.TweetText = text
		_, err := s.InsertTweetData(tweet)
		require.NoError(t, err)
	}

	// Start of day is inside the window.
	insert("NASA", 1, "2020-01-01T00:00:00Z", "mars landing update")
	insert("NASA", 2, "2020-01-01T10:00:00Z", "the mars rover is go")
	// Same day, no search term.
	insert("NASA", 3, "2020-01-01T12:00:00Z", "moon photos")
	// Start of the next day is outside the window.
	insert("NASA", 4, "2020-01-02T00:00:00Z", "mars again")
	// Someone else entirely.
	insert("SpaceX", 5, "2020-01-01T09:00:00Z", "mars is the goal")

	counts, err := s.SearchCountOfUserTweetsOnDay("NASA", "2020-01-01", "mars")
	require.NoError(t, err)
	assert.Equal(t, map[string]map[string]int64{"NASA": {"mars": 2}}, counts)

	// Substring match is case-sensitive.
	counts, err = s.SearchCountOfUserTweetsOnDay("NASA", "2020-01-01", "Mars")
	require.NoError(t, err)
	assert.Equal(t, int64(0), counts["NASA"]["Mars"])

	_, err = s.SearchCountOfUserTweetsOnDay("NASA", "not a date", "mars")
	assert.ErrorIs(t, err, ErrInvalidPayload)
}
