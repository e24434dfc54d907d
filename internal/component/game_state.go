package component

// Mode — политика сессии: обычная игра или стресс-тест.
type Mode int

const (
	ModePlay Mode = iota
	ModeStress
)

func (m Mode) String() string {
	if m == ModeStress {
		return "stress"
	}
	return "play"
}

// Phase — состояние сессии.
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseRunning
	PhaseFinished // стресс-тест: время вышло, спавн остановлен
	PhaseGameOver // обычная игра: жизни закончились
)

func (p Phase) String() string {
	switch p {
	case PhaseRunning:
		return "running"
	case PhaseFinished:
		return "finished"
	case PhaseGameOver:
		return "game_over"
	default:
		return "not_started"
	}
}
