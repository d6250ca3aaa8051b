package model

import "time"

// AllowedSource tags the platform a piece of text was pulled from.
// Only twitter is implemented today; the column exists so additional
// platforms can share the text_source table.
type AllowedSource string

const (
	SourceTwitter AllowedSource = "twitter"
)

/*

TextSource is the base record every piece of collected text shares,
independent of which platform it came from.

Id: primary key
SourceKey: AllowedSource tag identifying the originating platform
SourceUrl: url the text was pulled from
WrittenText: the raw text content, empty for retweet rows
TimePosted: when the text was posted, stored naive-UTC

TwitterSource: the platform-specific record layered on this row,
		"has-one" relation. At most one exists per TextSource and it is
		deleted together with this row.
*/
type TextSource struct {
	Id          uint          `gorm:"primaryKey"`
	SourceKey   AllowedSource `gorm:"type:varchar(32)"`
	SourceUrl   string
	WrittenText string `gorm:"type:text"`
	TimePosted  time.Time

	TwitterSource *TwitterSource `gorm:"constraint:OnDelete:CASCADE;"`
}

func (TextSource) TableName() string {
	return "text_source"
}
