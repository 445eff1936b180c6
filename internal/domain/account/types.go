package account

import "errors"

var ErrInvalidRole = errors.New("invalid account role")

// Role is a closed set. Travelers consume inventory, the four business roles
// supply it, admins oversee everything.
type Role string

const (
	RoleTraveler   Role = "traveler"
	RoleDriver     Role = "driver"
	RoleTourGuide  Role = "tour_guide"
	RoleCarOwner   Role = "car_owner"
	RoleHotelOwner Role = "hotel_owner"
	RoleAdmin      Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleTraveler, RoleDriver, RoleTourGuide, RoleCarOwner, RoleHotelOwner, RoleAdmin:
		return true
	default:
		return false
	}
}

// IsBusiness reports whether the role supplies inventory.
func (r Role) IsBusiness() bool {
	switch r {
	case RoleDriver, RoleTourGuide, RoleCarOwner, RoleHotelOwner:
		return true
	default:
		return false
	}
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}
