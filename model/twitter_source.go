package model

/*

TwitterSource is the twitter-specific record layered on a TextSource.

Id: primary key
TextSourceId: the base text row, "belongs-to" relation, never null
RetweetSourceId: when this row is a retweet, points at the TwitterSource
		of the original tweet. Null for regular tweets. Lookup only, no
		cascade beyond foreign-key integrity.
TweeterUserName: screen name of the account that posted
TweetId: the platform-assigned id. Globally unique; duplicate ingestion
		is detected through this constraint.
IsRetweet: true iff RetweetSourceId is set

Hashtags / Urls / Mentions: child value rows owned exclusively by this
		tweet, deleted together with it.
*/
type TwitterSource struct {
	Id              uint `gorm:"primaryKey"`
	TextSourceId    uint `gorm:"not null"`
	RetweetSourceId *uint
	TweeterUserName string
	TweetId         int64 `gorm:"uniqueIndex"`
	IsRetweet       bool

	TextSource    TextSource
	RetweetSource *TwitterSource     `gorm:"foreignKey:RetweetSourceId"`
	Hashtags      []TweetHashtag     `gorm:"constraint:OnDelete:CASCADE;"`
	Urls          []TweetURL         `gorm:"constraint:OnDelete:CASCADE;"`
	Mentions      []TweetUserMention `gorm:"constraint:OnDelete:CASCADE;"`
}

func (TwitterSource) TableName() string {
	return "twitter_source"
}

// TweetHashtag is a single hashtag used within a tweet.
type TweetHashtag struct {
	Id              uint `gorm:"primaryKey"`
	TwitterSourceId uint `gorm:"not null"`
	Hashtag         string
}

func (TweetHashtag) TableName() string {
	return "tweet_hashtags"
}

// TweetURL is a single url linked within a tweet.
type TweetURL struct {
	Id              uint `gorm:"primaryKey"`
	TwitterSourceId uint `gorm:"not null"`
	Url             string
}

func (TweetURL) TableName() string {
	return "tweet_urls"
}

// TweetUserMention is a single user mentioned within a tweet.
type TweetUserMention struct {
	Id              uint `gorm:"primaryKey"`
	TwitterSourceId uint `gorm:"not null"`
	UserName        string
}

func (TweetUserMention) TableName() string {
	return "tweet_user_mentions"
}
