package smartcar

import (
	"context"
	"net/http"

	"go.uber.org/zap"
)

// UnitSystem selects the measurement system vehicle data is returned in.
type UnitSystem string

const (
	UnitSystemMetric   UnitSystem = "metric"
	UnitSystemImperial UnitSystem = "imperial"
)

// Vehicle issues authenticated requests for a single vehicle. It holds no
// session state beyond the id and the access token it was built with, so
// independent Vehicle values can be used concurrently without coordination.
type Vehicle struct {
	ID          string
	AccessToken string

	// UnitSystem, when set, is sent on every request via the
	// SC-Unit-System header.
	UnitSystem UnitSystem

	logger *zap.Logger
}

// NewVehicle pairs a vehicle id from GetVehicles with an access token.
func NewVehicle(id, accessToken string) *Vehicle {
	return &Vehicle{ID: id, AccessToken: accessToken, logger: zap.NewNop()}
}

// WithLogger attaches a logger for debug-level request logging.
func (v *Vehicle) WithLogger(logger *zap.Logger) *Vehicle {
	if logger != nil {
		v.logger = logger
	}
	return v
}

func (v *Vehicle) request(method, path string) *request {
	r := newRequest(method, apiOrigin()+"/"+apiVersion+"/vehicles/"+v.ID+path).
		withHeader("Authorization", bearerHeader(v.AccessToken)).
		withLogger(v.logger)
	if v.UnitSystem != "" {
		r = r.withHeader("SC-Unit-System", string(v.UnitSystem))
	}
	return r
}

// Attributes returns the vehicle's make, model, year and id.
func (v *Vehicle) Attributes(ctx context.Context) (*VehicleAttributes, error) {
	res, err := v.request(http.MethodGet, "/").send(ctx)
	if err != nil {
		return nil, err
	}
	var attributes VehicleAttributes
	if err := res.decode(&attributes); err != nil {
		return nil, err
	}
	attributes.Meta = res.meta
	return &attributes, nil
}

// VIN returns the vehicle's manufacturer identifier.
func (v *Vehicle) VIN(ctx context.Context) (*VIN, error) {
	res, err := v.request(http.MethodGet, "/vin").send(ctx)
	if err != nil {
		return nil, err
	}
	var vin VIN
	if err := res.decode(&vin); err != nil {
		return nil, err
	}
	vin.Meta = res.meta
	return &vin, nil
}

// Odometer returns the vehicle's last known odometer reading.
func (v *Vehicle) Odometer(ctx context.Context) (*Odometer, error) {
	res, err := v.request(http.MethodGet, "/odometer").send(ctx)
	if err != nil {
		return nil, err
	}
	var odometer Odometer
	if err := res.decode(&odometer); err != nil {
		return nil, err
	}
	odometer.Meta = res.meta
	return &odometer, nil
}

// Location returns the vehicle's last known position.
func (v *Vehicle) Location(ctx context.Context) (*Location, error) {
	res, err := v.request(http.MethodGet, "/location").send(ctx)
	if err != nil {
		return nil, err
	}
	var location Location
	if err := res.decode(&location); err != nil {
		return nil, err
	}
	location.Meta = res.meta
	return &location, nil
}

// FuelTank returns the state of the fuel remaining in the tank. Only
// available for vehicles sold in the United States.
func (v *Vehicle) FuelTank(ctx context.Context) (*FuelTank, error) {
	res, err := v.request(http.MethodGet, "/fuel").send(ctx)
	if err != nil {
		return nil, err
	}
	var fuel FuelTank
	if err := res.decode(&fuel); err != nil {
		return nil, err
	}
	fuel.Meta = res.meta
	return &fuel, nil
}

// BatteryLevel returns an electric vehicle's state of charge and range.
func (v *Vehicle) BatteryLevel(ctx context.Context) (*BatteryLevel, error) {
	res, err := v.request(http.MethodGet, "/battery").send(ctx)
	if err != nil {
		return nil, err
	}
	var battery BatteryLevel
	if err := res.decode(&battery); err != nil {
		return nil, err
	}
	battery.Meta = res.meta
	return &battery, nil
}

// BatteryCapacity returns the total capacity of an electric vehicle's
// battery.
func (v *Vehicle) BatteryCapacity(ctx context.Context) (*BatteryCapacity, error) {
	res, err := v.request(http.MethodGet, "/battery/capacity").send(ctx)
	if err != nil {
		return nil, err
	}
	var capacity BatteryCapacity
	if err := res.decode(&capacity); err != nil {
		return nil, err
	}
	capacity.Meta = res.meta
	return &capacity, nil
}

// ChargingStatus returns an electric vehicle's current charge state.
func (v *Vehicle) ChargingStatus(ctx context.Context) (*ChargingStatus, error) {
	res, err := v.request(http.MethodGet, "/charge").send(ctx)
	if err != nil {
		return nil, err
	}
	var charge ChargingStatus
	if err := res.decode(&charge); err != nil {
		return nil, err
	}
	charge.Meta = res.meta
	return &charge, nil
}

// EngineOil returns the remaining life span of the engine oil.
func (v *Vehicle) EngineOil(ctx context.Context) (*EngineOilLife, error) {
	res, err := v.request(http.MethodGet, "/engine/oil").send(ctx)
	if err != nil {
		return nil, err
	}
	var oil EngineOilLife
	if err := res.decode(&oil); err != nil {
		return nil, err
	}
	oil.Meta = res.meta
	return &oil, nil
}

// TirePressure returns the air pressure of each tire.
func (v *Vehicle) TirePressure(ctx context.Context) (*TirePressure, error) {
	res, err := v.request(http.MethodGet, "/tires/pressure").send(ctx)
	if err != nil {
		return nil, err
	}
	var tires TirePressure
	if err := res.decode(&tires); err != nil {
		return nil, err
	}
	tires.Meta = res.meta
	return &tires, nil
}

// Permissions lists the permissions granted to the application for this
// vehicle.
func (v *Vehicle) Permissions(ctx context.Context) (*ApplicationPermissions, error) {
	res, err := v.request(http.MethodGet, "/permissions").send(ctx)
	if err != nil {
		return nil, err
	}
	var permissions ApplicationPermissions
	if err := res.decode(&permissions); err != nil {
		return nil, err
	}
	permissions.Meta = res.meta
	return &permissions, nil
}

func (v *Vehicle) command(ctx context.Context, path, action string) (*Action, error) {
	res, err := v.request(http.MethodPost, path).
		withJSON(map[string]string{"action": action}).
		send(ctx)
	if err != nil {
		return nil, err
	}
	var result Action
	if err := res.decode(&result); err != nil {
		return nil, err
	}
	result.Meta = res.meta
	return &result, nil
}

// Lock locks the vehicle.
func (v *Vehicle) Lock(ctx context.Context) (*Action, error) {
	return v.command(ctx, "/security", "LOCK")
}

// Unlock unlocks the vehicle.
func (v *Vehicle) Unlock(ctx context.Context) (*Action, error) {
	return v.command(ctx, "/security", "UNLOCK")
}

// StartCharge starts charging an electric vehicle.
func (v *Vehicle) StartCharge(ctx context.Context) (*Action, error) {
	return v.command(ctx, "/charge", "START")
}

// StopCharge stops charging an electric vehicle.
func (v *Vehicle) StopCharge(ctx context.Context) (*Action, error) {
	return v.command(ctx, "/charge", "STOP")
}

// Disconnect revokes the application's access to this vehicle.
func (v *Vehicle) Disconnect(ctx context.Context) (*Status, error) {
	res, err := v.request(http.MethodDelete, "/application").send(ctx)
	if err != nil {
		return nil, err
	}
	var status Status
	if err := res.decode(&status); err != nil {
		return nil, err
	}
	status.Meta = res.meta
	return &status, nil
}

// Subscribe subscribes this vehicle to a webhook.
func (v *Vehicle) Subscribe(ctx context.Context, webhookID string) (*Subscribe, error) {
	res, err := v.request(http.MethodPost, "/webhooks/"+webhookID).send(ctx)
	if err != nil {
		return nil, err
	}
	var subscription Subscribe
	if err := res.decode(&subscription); err != nil {
		return nil, err
	}
	subscription.Meta = res.meta
	return &subscription, nil
}

// Unsubscribe removes this vehicle from a webhook. Unlike every other call
// it authenticates with the Application Management Token from the dashboard
// rather than the vehicle's access token.
func (v *Vehicle) Unsubscribe(ctx context.Context, amt, webhookID string) (*Subscribe, error) {
	res, err := newRequest(http.MethodDelete, apiOrigin()+"/"+apiVersion+"/vehicles/"+v.ID+"/webhooks/"+webhookID).
		withHeader("Authorization", bearerHeader(amt)).
		withLogger(v.logger).
		send(ctx)
	if err != nil {
		return nil, err
	}
	var subscription Subscribe
	if err := res.decode(&subscription); err != nil {
		return nil, err
	}
	subscription.Meta = res.meta
	return &subscription, nil
}
