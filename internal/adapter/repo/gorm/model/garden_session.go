package model

import "time"

const TableNameGardenSession = "garden_sessions"

type GardenSession struct {
	SessionID   string     `gorm:"column:session_id;primaryKey" json:"session_id"`
	SpeciesID   string     `gorm:"column:species_id;not null" json:"species_id"`
	Status      string     `gorm:"column:status;not null" json:"status"`
	Outcome     string     `gorm:"column:outcome;not null" json:"outcome"`
	FinalDay    int32      `gorm:"column:final_day;not null" json:"final_day"`
	FinalHealth float64    `gorm:"column:final_health;not null" json:"final_health"`
	StartedAt   time.Time  `gorm:"column:started_at;not null" json:"started_at"`
	EndedAt     *time.Time `gorm:"column:ended_at" json:"ended_at"`
}

func (*GardenSession) TableName() string {
	return TableNameGardenSession
}
