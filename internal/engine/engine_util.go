package engine

// Result is the final word on the round: a correct guess by an eliminated
// infiltrator beats the count-based outcome.
func Result(s Session) Outcome {
	if s.Active && s.Guesser != nil {
		return OutcomeGuesser
	}
	return EvaluateWinCondition(s)
}

func ContainsEvent(events []Event, eventType EventType) bool {
	for _, event := range events {
		if event.Type == eventType {
			return true
		}
	}
	return false
}

func DerivePhase(s Session) Phase {
	if !s.Active {
		return PhaseIdle
	} else if Result(s) != OutcomeNone {
		return PhaseDone
	} else if !s.AllPicked() {
		return PhasePicking
	}
	for _, p := range s.Players {
		if p.Eliminated {
			return PhaseVoting
		}
	}
	return PhaseDiscussion
}
