package domain

import "github.com/enescakir/emoji"

// Role represents a player's secret role in a game
type Role string

const (
	RoleCitizen  Role = "citizen"
	RoleImpostor Role = "impostor"
	RoleSpy      Role = "spy"
	RoleJester   Role = "jester"
)

// SpecialRoles are the optional roles that can be enabled at game start
var SpecialRoles = []Role{RoleSpy, RoleJester}

// String returns the string representation of the role
func (r Role) String() string {
	return string(r)
}

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	switch r {
	case RoleCitizen, RoleImpostor, RoleSpy, RoleJester:
		return true
	}
	return false
}

// IsImpostorAligned returns true for roles that count against the citizens
// when checking elimination parity
func (r Role) IsImpostorAligned() bool {
	return r == RoleImpostor || r == RoleSpy
}

// KnowsWord returns true if the role is shown the secret word on reveal
func (r Role) KnowsWord() bool {
	return r == RoleCitizen || r == RoleJester
}

// Badge returns an emoji badge for the role
func (r Role) Badge() string {
	switch r {
	case RoleImpostor:
		return emoji.Ninja.String()
	case RoleSpy:
		return emoji.Detective.String()
	case RoleJester:
		return emoji.ClownFace.String()
	case RoleCitizen:
		return emoji.BustInSilhouette.String()
	default:
		return ""
	}
}

// hasRole reports whether roles contains r
func hasRole(roles []Role, r Role) bool {
	for _, role := range roles {
		if role == r {
			return true
		}
	}
	return false
}
