package smartcar

import "time"

// Meta carries the provider headers attached to a response: the request id,
// the unit system the values are in, and how old the vehicle data is.
// Diagnostic only; nothing in the SDK branches on it.
type Meta struct {
	RequestID  string
	DataAge    time.Time
	UnitSystem string
}

// Paging describes the slice of a listing a response covers.
type Paging struct {
	Count  int `json:"count"`
	Offset int `json:"offset"`
}

// Vehicles is a paged list of vehicle ids connected to the application for
// the current user.
type Vehicles struct {
	VehicleIDs []string `json:"vehicles"`
	Paging     Paging   `json:"paging"`
	Meta       Meta     `json:"-"`
}

// User identifies the vehicle owner who granted access to the application.
type User struct {
	ID   string `json:"id"`
	Meta Meta   `json:"-"`
}

// VehicleAttributes is the vehicle's identifying information.
type VehicleAttributes struct {
	ID    string `json:"id"`
	Make  string `json:"make"`
	Model string `json:"model"`
	Year  int    `json:"year"`
	Meta  Meta   `json:"-"`
}

// VIN is the vehicle's manufacturer identifier.
type VIN struct {
	VIN  string `json:"vin"`
	Meta Meta   `json:"-"`
}

// Odometer is the vehicle's last known odometer reading.
type Odometer struct {
	Distance float64 `json:"distance"`
	Meta     Meta    `json:"-"`
}

// Location is the vehicle's last known position.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Meta      Meta    `json:"-"`
}

// FuelTank is the state of the fuel remaining in the tank.
type FuelTank struct {
	Range            float64 `json:"range"`
	PercentRemaining float64 `json:"percentRemaining"`
	AmountRemaining  float64 `json:"amountRemaining"`
	Meta             Meta    `json:"-"`
}

// BatteryLevel is an electric vehicle's state of charge and remaining range.
type BatteryLevel struct {
	PercentRemaining float64 `json:"percentRemaining"`
	Range            float64 `json:"range"`
	Meta             Meta    `json:"-"`
}

// BatteryCapacity is the total capacity of an electric vehicle's battery.
type BatteryCapacity struct {
	Capacity float64 `json:"capacity"`
	Meta     Meta    `json:"-"`
}

// ChargingStatus is an electric vehicle's current charge state.
type ChargingStatus struct {
	IsPluggedIn bool   `json:"isPluggedIn"`
	State       string `json:"state"`
	Meta        Meta   `json:"-"`
}

// EngineOilLife is the remaining life span of the engine oil.
type EngineOilLife struct {
	LifeRemaining float64 `json:"lifeRemaining"`
	Meta          Meta    `json:"-"`
}

// TirePressure is the air pressure of each tire.
type TirePressure struct {
	FrontLeft  float64 `json:"frontLeft"`
	FrontRight float64 `json:"frontRight"`
	BackLeft   float64 `json:"backLeft"`
	BackRight  float64 `json:"backRight"`
	Meta       Meta    `json:"-"`
}

// ApplicationPermissions lists the permissions granted to the application
// for a vehicle.
type ApplicationPermissions struct {
	Permissions []string `json:"permissions"`
	Paging      Paging   `json:"paging"`
	Meta        Meta     `json:"-"`
}

// Action is the acknowledgement after sending a command to the vehicle.
type Action struct {
	Message string `json:"message"`
	Status  string `json:"status"`
	Meta    Meta   `json:"-"`
}

// Status is the acknowledgement of a disconnect or unsubscribe.
type Status struct {
	Status string `json:"status"`
	Meta   Meta   `json:"-"`
}

// Subscribe describes a webhook subscription for a vehicle.
type Subscribe struct {
	WebhookID string `json:"webhookId"`
	VehicleID string `json:"vehicleId"`
	Meta      Meta   `json:"-"`
}

// Capability reports whether a vehicle supports one endpoint, as part of a
// compatibility lookup.
type Capability struct {
	Permission string  `json:"permission"`
	Endpoint   string  `json:"endpoint"`
	Capable    bool    `json:"capable"`
	Reason     *string `json:"reason"`
}

// Compatibility reports whether a vehicle works with the API and which of
// the requested endpoints it supports.
type Compatibility struct {
	Compatible   bool         `json:"compatible"`
	Reason       *string      `json:"reason"`
	Capabilities []Capability `json:"capabilities"`
	Meta         Meta         `json:"-"`
}
