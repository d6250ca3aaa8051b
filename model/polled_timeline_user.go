package model

/*

PolledTimelineUser is a twitter account explicitly registered for
timeline polling.

Id: primary key, also encodes registration order
UserName: twitter screen name, e.g. "NASA"
*/
type PolledTimelineUser struct {
	Id       uint `gorm:"primaryKey"`
	UserName string
}

func (PolledTimelineUser) TableName() string {
	return "polled_timeline_users"
}
