package model

import "time"

const TableNameGardenEvent = "garden_events"

type GardenEvent struct {
	ID         int64     `gorm:"column:id;primaryKey;autoIncrement:true" json:"id"`
	SessionID  string    `gorm:"column:session_id;not null" json:"session_id"`
	Type       string    `gorm:"column:type;not null" json:"type"`
	Day        int32     `gorm:"column:day;not null" json:"day"`
	OccurredAt time.Time `gorm:"column:occurred_at;not null" json:"occurred_at"`
	Payload    []byte    `gorm:"column:payload;type:jsonb;not null" json:"payload"`
}

func (*GardenEvent) TableName() string {
	return TableNameGardenEvent
}
