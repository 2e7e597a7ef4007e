package domain

// eliminate votes out the player at roster index i and settles the outcome
// against the remaining roster
func eliminate(s *State, i int) {
	s.Players[i].Eliminate()
	out := s.Players[i]
	s.LastEliminated = &out
	evaluate(s, out.Role)
}

// evaluate applies the win conditions after an elimination:
//  1. a voted out jester wins alone
//  2. no impostor or spy left: citizens win, unless last breath grants the
//     eliminated impostor a guess
//  3. impostors and spies at parity with citizens: impostors win
//  4. otherwise the game goes on
//
// Jesters count for neither side in the parity check.
func evaluate(s *State, eliminated Role) {
	impostors := s.CountAlive(Role.IsImpostorAligned)
	citizens := s.CountAlive(func(r Role) bool { return r == RoleCitizen })

	switch {
	case eliminated == RoleJester:
		s.Phase = PhaseResults
		s.Winner = RoleJester
	case impostors == 0:
		if s.UseLastBreath {
			s.Phase = PhaseLastBreath
			s.Winner = ""
		} else {
			s.Phase = PhaseResults
			s.Winner = RoleCitizen
		}
	case impostors >= citizens:
		s.Phase = PhaseResults
		s.Winner = RoleImpostor
	default:
		s.Phase = PhaseRoundResults
		s.Winner = ""
	}
}
