package Reports

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseVehicleRow(t *testing.T) {
	row := []string{"abc-123", "Trailer", "Volvo FH16", "2021", "2027-03-15", "182000"}
	vehicle, ok := parseVehicleRow(row, 7)

	assert.True(t, ok)
	assert.Equal(t, uint(7), vehicle.CompanyID)
	assert.Equal(t, "ABC-123", vehicle.PlateNumber)
	assert.Equal(t, "Trailer", vehicle.VehicleType)
	assert.Equal(t, "Volvo FH16", vehicle.MakeModel)
	assert.Equal(t, 2021, vehicle.Year)
	assert.Equal(t, 2027, vehicle.LicenseExpirationDate.Year())
	assert.Equal(t, int64(182000), vehicle.Odometer)
	assert.Equal(t, "active", vehicle.Status)
}

func TestParseVehicleRowSkipsHeader(t *testing.T) {
	_, ok := parseVehicleRow([]string{"Plate Number", "Type", "Make"}, 7)
	assert.False(t, ok)
}

func TestParseVehicleRowSkipsEmptyPlate(t *testing.T) {
	_, ok := parseVehicleRow([]string{"", "Van"}, 7)
	assert.False(t, ok)
}

func TestParseVehicleRowToleratesShortRows(t *testing.T) {
	vehicle, ok := parseVehicleRow([]string{"XYZ-9"}, 7)
	assert.True(t, ok)
	assert.Equal(t, "XYZ-9", vehicle.PlateNumber)
	assert.Zero(t, vehicle.Year)
}
