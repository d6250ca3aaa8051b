package store

import (
	"strings"

	"github.com/brett-smythe/eleanor/model"
	Logger "github.com/brett-smythe/eleanor/utils/log"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// InsertResult tags the outcome of an ingestion so callers can tell a
// fresh insert from an idempotent no-op without inspecting errors.
type InsertResult int

const (
	InsertOK InsertResult = iota
	InsertDuplicate
)

// InsertTweetData ingests a tweet payload. For a retweet the original
// described by RetweetData is ingested first (recursively, for nested
// chains) and the retweet row is linked to it; the whole chain is
// written in one transaction so a dependent row can never land without
// its original.
//
// A tweet_id that is already stored, whether found by lookup or lost to
// a concurrent inserter at commit time, yields InsertDuplicate and no
// error. Validation failures and storage failures are returned to the
// caller; storage failures are additionally logged.
func (s *Store) InsertTweetData(data *TweetData) (InsertResult, error) {
	if err := data.Validate(); err != nil {
		return InsertOK, err
	}

	result := InsertOK
	err := s.db.Transaction(func(tx *gorm.DB) error {
		_, created, err := insertTweet(tx, data)
		if err != nil {
			return err
		}
		if !created {
			result = InsertDuplicate
		}
		return nil
	})
	if err != nil {
		if isUniqueViolation(err) {
			// Raced another inserter on the same tweet_id. Already
			// captured so, moving on.
			Logger.Log.Infof("duplicate tweet %d is already in the database, skipping", data.TweetId)
			return InsertDuplicate, nil
		}
		Logger.Log.WithError(err).Errorf("failed to insert tweet %d", data.TweetId)
		return InsertOK, errors.Wrapf(err, "inserting tweet %d", data.TweetId)
	}
	return result, nil
}

// insertTweet writes one tweet (and, for retweets, its originals) using
// the supplied transaction. Returns the stored row and whether it was
// newly created.
func insertTweet(tx *gorm.DB, data *TweetData) (*model.TwitterSource, bool, error) {
	var existing model.TwitterSource
	err := tx.Where("tweet_id = ?", int64(data.TweetId)).First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	var retweetSourceId *uint
	writtenText := data.TweetText
	if data.IsRetweet {
		original, _, err := insertTweet(tx, data.RetweetData)
		if err != nil {
			return nil, false, err
		}
		retweetSourceId = &original.Id
		// The retweet's own text row is empty; the content lives on the
		// original.
		writtenText = ""
	}

	posted, err := parsePostedTime(data.TweetCreated)
	if err != nil {
		return nil, false, err
	}

	textSource := model.TextSource{
		SourceKey:   model.SourceTwitter,
		SourceUrl:   data.Url,
		WrittenText: writtenText,
		TimePosted:  posted,
	}
	if err := tx.Create(&textSource).Error; err != nil {
		return nil, false, err
	}

	tweet := model.TwitterSource{
		TextSourceId:    textSource.Id,
		RetweetSourceId: retweetSourceId,
		TweeterUserName: data.UserName,
		TweetId:         int64(data.TweetId),
		IsRetweet:       data.IsRetweet,
	}
	if !data.IsRetweet {
		for _, hashtag := range data.Hashtags {
			tweet.Hashtags = append(tweet.Hashtags, model.TweetHashtag{Hashtag: hashtag})
		}
		for _, url := range data.TweetUrls {
			tweet.Urls = append(tweet.Urls, model.TweetURL{Url: url})
		}
		for _, mention := range data.UserMentions {
			tweet.Mentions = append(tweet.Mentions, model.TweetUserMention{UserName: mention})
		}
	}
	if err := tx.Create(&tweet).Error; err != nil {
		return nil, false, err
	}
	return &tweet, true, nil
}

// isUniqueViolation covers gorm's translated sentinel plus the raw
// postgres and sqlite messages for drivers without translation.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
