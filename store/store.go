package store

import (
	"bytes"
	"strconv"
	"time"

	"github.com/araddon/dateparse"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Store exposes the ingestion and query operations over an injected
// database handle. Construct it once in main with NewStore and pass it
// to whatever serves requests; each operation acquires its own
// transaction from the handle's pool.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// ErrInvalidPayload marks payloads rejected before any write, so the
// boundary layer can answer with a client error instead of a server one.
var ErrInvalidPayload = errors.New("invalid tweet payload")

// TweetId is a tweet's platform-assigned id. Inbound JSON carries it
// either as a number or as a decimal string; it always renders as a
// number.
type TweetId int64

func (id *TweetId) UnmarshalJSON(b []byte) error {
	s := string(bytes.Trim(b, `"`))
	if s == "null" || s == "" {
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return errors.Wrapf(ErrInvalidPayload, "tweet_id %q is not numeric", s)
	}
	*id = TweetId(v)
	return nil
}

/*

TweetData is both the inbound ingestion payload and the flat record
returned by tweet lookups, mirroring the wire format one to one.

RetweetData describes the original tweet when IsRetweet is set. It is
required on ingestion of a retweet and populated on lookup; for regular
tweets the field is omitted.
*/
type TweetData struct {
	UserName     string     `json:"user_name"`
	TweetId      TweetId    `json:"tweet_id"`
	Url          string     `json:"url"`
	TweetText    string     `json:"tweet_text"`
	TweetCreated string     `json:"tweet_created"`
	IsRetweet    bool       `json:"is_retweet"`
	UserMentions []string   `json:"user_mentions"`
	Hashtags     []string   `json:"hashtags"`
	TweetUrls    []string   `json:"tweet_urls"`
	RetweetData  *TweetData `json:"retweet_data,omitempty"`
}

// Validate checks the required fields, recursing into RetweetData.
func (d *TweetData) Validate() error {
	switch {
	case d.UserName == "":
		return errors.Wrap(ErrInvalidPayload, "missing user_name")
	case d.TweetId == 0:
		return errors.Wrap(ErrInvalidPayload, "missing tweet_id")
	case d.Url == "":
		return errors.Wrap(ErrInvalidPayload, "missing url")
	case d.TweetCreated == "":
		return errors.Wrap(ErrInvalidPayload, "missing tweet_created")
	}
	if d.IsRetweet {
		if d.RetweetData == nil {
			return errors.Wrap(ErrInvalidPayload, "retweet without retweet_data")
		}
		return d.RetweetData.Validate()
	}
	return nil
}

// timePostedFormat renders stored timestamps as ISO 8601 with an
// explicit zero offset; storage is naive-UTC.
const timePostedFormat = "2006-01-02T15:04:05+0000"

func formatTimePosted(t time.Time) string {
	return t.UTC().Format(timePostedFormat)
}

// parsePostedTime parses the loosely formatted date strings tweet
// payloads carry, treating zone-less values as UTC.
func parsePostedTime(value string) (time.Time, error) {
	t, err := dateparse.ParseIn(value, time.UTC)
	if err != nil {
		return time.Time{}, errors.Wrapf(ErrInvalidPayload, "unparseable time %q", value)
	}
	return t.UTC(), nil
}
