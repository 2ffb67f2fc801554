package model

import (
	"time"
)

// AirportModel carries the facility's tracked fields plus the weather
// snapshot parsed out of the latest METAR.
type AirportModel struct {
	AirportID          int       `gorm:"column:airport_id;primaryKey;autoIncrement" json:"airport_id"`
	AirportName        string    `gorm:"column:airport_name;size:255;not null" json:"airport_name"`
	AirportIcao        string    `gorm:"column:airport_icao;size:4;not null;uniqueIndex" json:"airport_icao"`
	AirportArrivals    int       `gorm:"column:airport_arrivals;not null;default:0" json:"airport_arrivals"`
	AirportDepartures  int       `gorm:"column:airport_departures;not null;default:0" json:"airport_departures"`
	AirportWind        *string   `gorm:"column:airport_wind;size:20" json:"airport_wind"`
	AirportAltimeter   *string   `gorm:"column:airport_altimeter;size:10" json:"airport_altimeter"`
	AirportTemperature *string   `gorm:"column:airport_temperature;size:10" json:"airport_temperature"`
	AirportMetarRaw    *string   `gorm:"column:airport_metar_raw;type:text" json:"airport_metar_raw"`
	AirportCreatedAt   time.Time `gorm:"column:airport_created_at;autoCreateTime" json:"airport_created_at"`
	AirportUpdatedAt   time.Time `gorm:"column:airport_updated_at;autoUpdateTime" json:"airport_updated_at"`
}

func (AirportModel) TableName() string {
	return "airports"
}
