package dto

import (
	"strings"

	"artcc_backend/internals/features/airports/model"
)

type CreateAirportRequest struct {
	AirportName string `json:"airport_name" validate:"required,max=255"`
	AirportIcao string `json:"airport_icao" validate:"required,len=4,alphanum"`
}

type UpdateAirportRequest struct {
	AirportID          int     `json:"airport_id" validate:"required"`
	AirportName        string  `json:"airport_name" validate:"required,max=255"`
	AirportIcao        string  `json:"airport_icao" validate:"required,len=4,alphanum"`
	AirportArrivals    int     `json:"airport_arrivals" validate:"gte=0"`
	AirportDepartures  int     `json:"airport_departures" validate:"gte=0"`
	AirportWind        *string `json:"airport_wind"`
	AirportAltimeter   *string `json:"airport_altimeter"`
	AirportTemperature *string `json:"airport_temperature"`
	AirportMetarRaw    *string `json:"airport_metar_raw"`
}

func (r CreateAirportRequest) ToModel() model.AirportModel {
	return model.AirportModel{
		AirportName: r.AirportName,
		AirportIcao: strings.ToUpper(r.AirportIcao),
	}
}

func (r UpdateAirportRequest) Apply(airport *model.AirportModel) {
	airport.AirportName = r.AirportName
	airport.AirportIcao = strings.ToUpper(r.AirportIcao)
	airport.AirportArrivals = r.AirportArrivals
	airport.AirportDepartures = r.AirportDepartures
	airport.AirportWind = r.AirportWind
	airport.AirportAltimeter = r.AirportAltimeter
	airport.AirportTemperature = r.AirportTemperature
	airport.AirportMetarRaw = r.AirportMetarRaw
}
