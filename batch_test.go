package smartcar

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVehicleBatch(t *testing.T) {
	newAPIServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v2.0/vehicles/veh-1/batch", r.URL.Path)

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"requests":[{"path":"/odometer"},{"path":"/fuel"},{"path":"/location"}]}`, string(body))

		w.Write([]byte(`{"responses":[
			{"path":"/odometer","code":200,"body":{"distance":1234.5},"headers":{"sc-unit-system":"metric"}},
			{"path":"/fuel","code":404,"body":{"type":"VEHICLE_NOT_CAPABLE","code":"SMARTCAR_NOT_CAPABLE","description":"The vehicle is not capable of performing the request."}},
			{"path":"/location","code":200,"body":{"latitude":37.4292,"longitude":-122.1381}}
		]}`))
	}))

	batch, err := NewVehicle("veh-1", "test-access-token").
		Batch(context.Background(), "/odometer", "/fuel", "/location")
	require.NoError(t, err)
	require.Len(t, batch.Responses, 3)

	// results come back in request order
	odometer := batch.Responses[0]
	assert.Equal(t, "/odometer", odometer.Path)
	assert.Equal(t, 200, odometer.Code)
	assert.NoError(t, odometer.Err)
	require.NotNil(t, odometer.Body.Odometer)
	assert.Equal(t, 1234.5, odometer.Body.Odometer.Distance)
	assert.Equal(t, "metric", odometer.Meta.UnitSystem)

	// a failing entry resolves to its own error without touching the rest
	fuel := batch.Responses[1]
	assert.Equal(t, "/fuel", fuel.Path)
	require.Error(t, fuel.Err)
	var apiErr *APIError
	require.ErrorAs(t, fuel.Err, &apiErr)
	assert.Equal(t, "VEHICLE_NOT_CAPABLE", apiErr.Type)
	assert.Equal(t, 404, apiErr.StatusCode)
	assert.Nil(t, fuel.Body.FuelTank)

	location := batch.Responses[2]
	assert.NoError(t, location.Err)
	require.NotNil(t, location.Body.Location)
	assert.Equal(t, 37.4292, location.Body.Location.Latitude)
	assert.Equal(t, -122.1381, location.Body.Location.Longitude)
}

func TestVehicleBatchErrorWithoutCode(t *testing.T) {
	newAPIServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"responses":[
			{"path":"/odometer","code":200,"body":{"distance":1234.5}},
			{"path":"/fuel","code":404,"body":{"type":"VEHICLE_NOT_CAPABLE","description":"not capable"}}
		]}`))
	}))

	batch, err := NewVehicle("veh-1", "test-access-token").
		Batch(context.Background(), "/odometer", "/fuel")
	require.NoError(t, err)
	require.Len(t, batch.Responses, 2)

	var apiErr *APIError
	require.ErrorAs(t, batch.Responses[1].Err, &apiErr)
	assert.Equal(t, "VEHICLE_NOT_CAPABLE", apiErr.ErrorCode())

	// the first entry still resolved
	require.NotNil(t, batch.Responses[0].Body.Odometer)
	assert.Equal(t, 1234.5, batch.Responses[0].Body.Odometer.Distance)
}

func TestVehicleBatchAttributesRoot(t *testing.T) {
	newAPIServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"responses":[
			{"path":"/","code":200,"body":{"id":"abc","make":"TESLA","model":"Model 3","year":2020}},
			{"path":"/tires/pressure","code":200,"body":{"frontLeft":219.3,"frontRight":219.3,"backLeft":220.0,"backRight":220.0}}
		]}`))
	}))

	batch, err := NewVehicle("veh-1", "test-access-token").
		Batch(context.Background(), "/", "/tires/pressure")
	require.NoError(t, err)
	require.Len(t, batch.Responses, 2)

	require.NotNil(t, batch.Responses[0].Body.Attributes)
	assert.Equal(t, "TESLA", batch.Responses[0].Body.Attributes.Make)

	require.NotNil(t, batch.Responses[1].Body.TirePressure)
	assert.Equal(t, 219.3, batch.Responses[1].Body.TirePressure.FrontLeft)
}

func TestVehicleBatchUnknownPath(t *testing.T) {
	newAPIServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"responses":[{"path":"/mystery","code":200,"body":{"value":1}}]}`))
	}))

	batch, err := NewVehicle("veh-1", "test-access-token").
		Batch(context.Background(), "/mystery")
	require.NoError(t, err)
	require.Len(t, batch.Responses, 1)

	var parseErr *ParseError
	assert.ErrorAs(t, batch.Responses[0].Err, &parseErr)
}

func TestNormalizeBatchPath(t *testing.T) {
	assert.Equal(t, "/", normalizeBatchPath("/"))
	assert.Equal(t, "/odometer", normalizeBatchPath("odometer"))
	assert.Equal(t, "/odometer", normalizeBatchPath("/odometer/"))
	assert.Equal(t, "/tires/pressure", normalizeBatchPath("/tires/pressure"))
}
