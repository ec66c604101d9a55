package domain

const (
	LoveMeterStep = 10
	LoveMeterMax  = 100
)

// LoveMeter is a percentage raised one step per press and capped at LoveMeterMax.
type LoveMeter struct {
	Level int
}

func (m LoveMeter) normalized() LoveMeter {
	switch {
	case m.Level < 0:
		return LoveMeter{}
	case m.Level > LoveMeterMax:
		return LoveMeter{Level: LoveMeterMax}
	default:
		return m
	}
}

// Raise adds one step. A full meter stays full.
func (m LoveMeter) Raise() LoveMeter {
	m = m.normalized()
	if m.Level < LoveMeterMax {
		m.Level += LoveMeterStep
	}
	return m.normalized()
}

func (m LoveMeter) Overflowing() bool {
	return m.normalized().Level >= LoveMeterMax
}
