package smartcar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// batchRequestBody is the wire body of POST /batch.
type batchRequestBody struct {
	Requests []batchRequestPath `json:"requests"`
}

type batchRequestPath struct {
	Path string `json:"path"`
}

// rawBatchResponse mirrors one entry of the wire response before its body
// is resolved against the shape its path implies.
type rawBatchResponse struct {
	Path    string          `json:"path"`
	Code    int             `json:"code"`
	Body    json.RawMessage `json:"body"`
	Headers json.RawMessage `json:"headers"`
}

type rawBatch struct {
	Responses []rawBatchResponse `json:"responses"`
}

// batchHeaders is the per-entry header metadata as it appears in the JSON
// body of a batch response.
type batchHeaders struct {
	DataAge    string `json:"sc-data-age"`
	RequestID  string `json:"sc-request-id"`
	UnitSystem string `json:"sc-unit-system"`
}

// BatchResponseBody is a tagged union over the shapes a batch sub-request
// can produce. Exactly one field is non-nil, chosen by the requested path.
type BatchResponseBody struct {
	Attributes      *VehicleAttributes
	VIN             *VIN
	Odometer        *Odometer
	Location        *Location
	FuelTank        *FuelTank
	BatteryLevel    *BatteryLevel
	BatteryCapacity *BatteryCapacity
	ChargingStatus  *ChargingStatus
	EngineOil       *EngineOilLife
	TirePressure    *TirePressure
	Permissions     *ApplicationPermissions
}

// resolve decodes raw into the variant the requested path implies. The path
// is the tag; the payload shape is never sniffed, so shapes with
// overlapping field names cannot be confused.
func (b *BatchResponseBody) resolve(path string, raw json.RawMessage) error {
	var target any
	switch normalizeBatchPath(path) {
	case "/":
		b.Attributes = &VehicleAttributes{}
		target = b.Attributes
	case "/vin":
		b.VIN = &VIN{}
		target = b.VIN
	case "/odometer":
		b.Odometer = &Odometer{}
		target = b.Odometer
	case "/location":
		b.Location = &Location{}
		target = b.Location
	case "/fuel":
		b.FuelTank = &FuelTank{}
		target = b.FuelTank
	case "/battery":
		b.BatteryLevel = &BatteryLevel{}
		target = b.BatteryLevel
	case "/battery/capacity":
		b.BatteryCapacity = &BatteryCapacity{}
		target = b.BatteryCapacity
	case "/charge":
		b.ChargingStatus = &ChargingStatus{}
		target = b.ChargingStatus
	case "/engine/oil":
		b.EngineOil = &EngineOilLife{}
		target = b.EngineOil
	case "/tires/pressure":
		b.TirePressure = &TirePressure{}
		target = b.TirePressure
	case "/permissions":
		b.Permissions = &ApplicationPermissions{}
		target = b.Permissions
	default:
		return &ParseError{Err: fmt.Errorf("unknown batch path %q", path), Body: raw}
	}

	if err := json.Unmarshal(raw, target); err != nil {
		return &ParseError{Err: err, Body: raw}
	}
	return nil
}

func normalizeBatchPath(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if path != "/" {
		path = strings.TrimSuffix(path, "/")
	}
	return path
}

// BatchResponse is one sub-response of a batch call. Err carries this
// entry's own failure; it never fails the surrounding batch.
type BatchResponse struct {
	Path string
	Code int
	Body BatchResponseBody
	Err  error
	Meta Meta
}

// Batch holds the per-path results of a batch call, in request order.
type Batch struct {
	Responses []BatchResponse
	Meta      Meta
}

// Batch bundles several read endpoints into a single request. Each
// sub-response resolves independently: a 404 on one path becomes that
// entry's Err while the other entries still carry data.
func (v *Vehicle) Batch(ctx context.Context, paths ...string) (*Batch, error) {
	body := batchRequestBody{Requests: make([]batchRequestPath, len(paths))}
	for i, p := range paths {
		body.Requests[i] = batchRequestPath{Path: p}
	}

	res, err := v.request(http.MethodPost, "/batch").withJSON(body).send(ctx)
	if err != nil {
		return nil, err
	}

	var raw rawBatch
	if err := res.decode(&raw); err != nil {
		return nil, err
	}

	batch := &Batch{
		Responses: make([]BatchResponse, len(raw.Responses)),
		Meta:      res.meta,
	}
	for i, sub := range raw.Responses {
		batch.Responses[i] = resolveBatchResponse(sub)
	}
	return batch, nil
}

func resolveBatchResponse(sub rawBatchResponse) BatchResponse {
	out := BatchResponse{
		Path: sub.Path,
		Code: sub.Code,
		Meta: batchMeta(sub.Headers),
	}

	if sub.Code < 200 || sub.Code > 299 {
		var apiErr APIError
		if err := json.Unmarshal(sub.Body, &apiErr); err == nil && apiErr.ErrorCode() != "" {
			apiErr.StatusCode = sub.Code
			out.Err = &apiErr
		} else {
			out.Err = &HTTPError{StatusCode: sub.Code, Body: string(sub.Body)}
		}
		return out
	}

	if err := out.Body.resolve(sub.Path, sub.Body); err != nil {
		out.Err = err
	}
	return out
}

func batchMeta(raw json.RawMessage) Meta {
	var meta Meta
	if len(raw) == 0 {
		return meta
	}
	var headers batchHeaders
	if err := json.Unmarshal(raw, &headers); err != nil {
		return meta
	}
	meta.RequestID = headers.RequestID
	meta.UnitSystem = headers.UnitSystem
	if headers.DataAge != "" {
		if age, err := time.Parse(time.RFC3339, headers.DataAge); err == nil {
			meta.DataAge = age
		}
	}
	return meta
}
