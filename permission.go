package smartcar

import "strings"

// Permission is a capability the application asks the vehicle owner to
// grant during the Connect flow. The string value is the wire form used in
// the authorization scope.
type Permission string

const (
	PermissionReadEngineOil   Permission = "read-engine-oil"
	PermissionReadBattery     Permission = "read-battery"
	PermissionReadCharge      Permission = "read-charge"
	PermissionControlCharge   Permission = "control-charge"
	PermissionReadThermometer Permission = "read-thermometer"
	PermissionReadFuel        Permission = "read-fuel"
	PermissionReadLocation    Permission = "read-location"
	PermissionControlSecurity Permission = "control-security"
	PermissionReadOdometer    Permission = "read-odometer"
	PermissionReadTires       Permission = "read-tires"
	PermissionReadVehicleInfo Permission = "read-vehicle-info"
	PermissionReadVIN         Permission = "read-vin"
)

var allPermissions = []Permission{
	PermissionReadEngineOil,
	PermissionReadBattery,
	PermissionReadCharge,
	PermissionControlCharge,
	PermissionReadThermometer,
	PermissionReadFuel,
	PermissionReadLocation,
	PermissionControlSecurity,
	PermissionReadOdometer,
	PermissionReadTires,
	PermissionReadVehicleInfo,
	PermissionReadVIN,
}

// Scope accumulates the set of permissions requested during Connect.
// Adding a permission twice has no effect.
type Scope struct {
	permissions []Permission
}

// NewScope builds a scope from the given permissions.
func NewScope(permissions ...Permission) *Scope {
	s := &Scope{}
	for _, p := range permissions {
		s.Add(p)
	}
	return s
}

// NewScopeWithAllPermissions builds a scope holding the full permission set,
// for integrations that request everything.
func NewScopeWithAllPermissions() *Scope {
	return NewScope(allPermissions...)
}

// Add inserts a permission into the scope. Idempotent.
func (s *Scope) Add(p Permission) *Scope {
	for _, existing := range s.permissions {
		if existing == p {
			return s
		}
	}
	s.permissions = append(s.permissions, p)
	return s
}

// String serializes the scope as the space-separated wire forms of its
// permissions, in the order they were first added.
func (s *Scope) String() string {
	parts := make([]string, len(s.permissions))
	for i, p := range s.permissions {
		parts[i] = string(p)
	}
	return strings.Join(parts, " ")
}
