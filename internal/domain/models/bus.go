package models

const (
	BusActive      = "active"
	BusMaintenance = "maintenance"
)

// Bus is a vehicle plus its driver.
type Bus struct {
	ID          string `json:"id"`
	PlateNumber string `json:"plateNumber" binding:"required"`
	Capacity    int    `json:"capacity" binding:"required,gt=0"`
	DriverName  string `json:"driverName" binding:"required"`
	DriverPhone string `json:"driverPhone" binding:"required"`
	DriverAge   int    `json:"driverAge"`
	Status      string `json:"status"`
}
