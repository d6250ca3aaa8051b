package store

import (
	"time"

	"github.com/brett-smythe/eleanor/model"
	Logger "github.com/brett-smythe/eleanor/utils/log"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// GetTrackedUsers lists the screen names registered for timeline
// polling, in registration order.
func (s *Store) GetTrackedUsers() ([]string, error) {
	users := []string{}
	err := s.db.Model(&model.PolledTimelineUser{}).
		Order("id").
		Pluck("user_name", &users).Error
	if err != nil {
		return nil, errors.Wrap(err, "listing tracked users")
	}
	return users, nil
}

// BeginTrackingUser registers username for timeline polling. Callers
// are expected to screen duplicates with IsUserTracked first; this
// layer performs no duplicate check.
func (s *Store) BeginTrackingUser(username string) error {
	Logger.Log.Debugf("adding twitter user %s to be tracked", username)
	err := s.db.Create(&model.PolledTimelineUser{UserName: username}).Error
	return errors.Wrapf(err, "tracking user %s", username)
}

// IsUserTracked reports whether username is registered in the
// polled-timeline-users table. This is registration membership; for the
// "has this account ever tweeted in our data" check see HasTweetsFrom.
func (s *Store) IsUserTracked(username string) (bool, error) {
	var count int64
	err := s.db.Model(&model.PolledTimelineUser{}).
		Where("user_name = ?", username).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrapf(err, "checking tracked user %s", username)
	}
	return count > 0, nil
}

// HasTweetsFrom reports whether any stored tweet was authored by
// screenName.
func (s *Store) HasTweetsFrom(screenName string) (bool, error) {
	var count int64
	err := s.db.Model(&model.TwitterSource{}).
		Where("tweeter_user_name = ?", screenName).
		Distinct("tweeter_user_name").
		Count(&count).Error
	if err != nil {
		return false, errors.Wrapf(err, "checking tweets from %s", screenName)
	}
	return count > 0, nil
}

// LastTweetId returns the highest tweet id stored for screenName. The
// second return is false when no tweets from screenName are stored.
func (s *Store) LastTweetId(screenName string) (int64, bool, error) {
	hasTweets, err := s.HasTweetsFrom(screenName)
	if err != nil {
		return 0, false, err
	}
	if !hasTweets {
		return 0, false, nil
	}

	var tweet model.TwitterSource
	err = s.db.Where("tweeter_user_name = ?", screenName).
		Order("tweet_id desc").
		First(&tweet).Error
	if err != nil {
		return 0, false, errors.Wrapf(err, "last tweet id for %s", screenName)
	}
	Logger.Log.Debugf("last tweet id from twitter user %s is %d", screenName, tweet.TweetId)
	return tweet.TweetId, true, nil
}

// GetTweetDataById returns the stored tweet with the given platform id
// in the same shape it was ingested, or nil when no such tweet exists.
// For retweets RetweetData carries the resolved original, transitively.
func (s *Store) GetTweetDataById(tweetId int64) (*TweetData, error) {
	var tweet model.TwitterSource
	err := s.db.Preload("TextSource").
		Preload("Hashtags").
		Preload("Urls").
		Preload("Mentions").
		Where("tweet_id = ?", tweetId).
		First(&tweet).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "fetching tweet %d", tweetId)
	}
	return s.assembleTweetData(&tweet)
}

func (s *Store) assembleTweetData(tweet *model.TwitterSource) (*TweetData, error) {
	data := &TweetData{
		UserName:     tweet.TweeterUserName,
		TweetId:      TweetId(tweet.TweetId),
		Url:          tweet.TextSource.SourceUrl,
		TweetText:    tweet.TextSource.WrittenText,
		TweetCreated: formatTimePosted(tweet.TextSource.TimePosted),
		IsRetweet:    tweet.IsRetweet,
		UserMentions: []string{},
		Hashtags:     []string{},
		TweetUrls:    []string{},
	}
	for _, mention := range tweet.Mentions {
		data.UserMentions = append(data.UserMentions, mention.UserName)
	}
	for _, hashtag := range tweet.Hashtags {
		data.Hashtags = append(data.Hashtags, hashtag.Hashtag)
	}
	for _, url := range tweet.Urls {
		data.TweetUrls = append(data.TweetUrls, url.Url)
	}

	if tweet.IsRetweet && tweet.RetweetSourceId != nil {
		var original model.TwitterSource
		err := s.db.Preload("TextSource").
			Preload("Hashtags").
			Preload("Urls").
			Preload("Mentions").
			First(&original, *tweet.RetweetSourceId).Error
		if err != nil {
			return nil, errors.Wrapf(err, "resolving original of retweet %d", tweet.TweetId)
		}
		data.RetweetData, err = s.assembleTweetData(&original)
		if err != nil {
			return nil, err
		}
	}
	return data, nil
}

// SearchCountOfUserTweetsOnDay counts how many tweets username posted
// on the UTC day of date containing searchTerm as a case-sensitive
// substring. The day window is [00:00:00, +24h).
func (s *Store) SearchCountOfUserTweetsOnDay(username, date, searchTerm string) (map[string]map[string]int64, error) {
	parsed, err := parsePostedTime(date)
	if err != nil {
		return nil, err
	}
	start := time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)

	var count int64
	err = s.db.Model(&model.TwitterSource{}).
		Joins("JOIN text_source ON text_source.id = twitter_source.text_source_id").
		Where("twitter_source.tweeter_user_name = ?", username).
		Where("text_source.time_posted >= ? AND text_source.time_posted < ?", start, end).
		Where("text_source.written_text LIKE ?", "%"+searchTerm+"%").
		Count(&count).Error
	if err != nil {
		return nil, errors.Wrapf(err, "counting tweets from %s on %s", username, date)
	}
	return map[string]map[string]int64{username: {searchTerm: count}}, nil
}
