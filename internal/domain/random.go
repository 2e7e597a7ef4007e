package domain

import "github.com/valyala/fastrand"

// Rand is the source of randomness for role dealing
type Rand interface {
	// Intn returns a uniform value in [0, n). n is always > 0.
	Intn(n int) int
}

// FastRand is a Rand backed by fastrand's per-P generator
type FastRand struct{}

// Intn implements Rand
func (FastRand) Intn(n int) int {
	return int(fastrand.Uint32n(uint32(n)))
}

// dealRoles builds the role permutation for n players. Indices are drawn
// without replacement from a shrinking pool: impostors first, then the spy,
// then the jester. Draws stop early if the pool runs dry.
func dealRoles(rng Rand, n, impostors int, special []Role) []Role {
	roles := make([]Role, n)
	pool := make([]int, n)
	for i := range roles {
		roles[i] = RoleCitizen
		pool[i] = i
	}

	draw := func() int {
		k := rng.Intn(len(pool))
		idx := pool[k]
		pool = append(pool[:k], pool[k+1:]...)
		return idx
	}

	for i := 0; i < impostors && len(pool) > 0; i++ {
		roles[draw()] = RoleImpostor
	}
	for _, r := range SpecialRoles {
		if hasRole(special, r) && len(pool) > 0 {
			roles[draw()] = r
		}
	}

	return roles
}
