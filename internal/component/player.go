// internal/component/player.go
package component

// PlayerStats хранит валюту и жизни игрока на время одной сессии.
type PlayerStats struct {
	Currency int
	Lives    int
}

// LoseLife снимает одну жизнь, не опуская счётчик ниже нуля.
// Возвращает true, если жизни закончились.
func (s *PlayerStats) LoseLife() bool {
	if s.Lives > 0 {
		s.Lives--
	}
	return s.Lives == 0
}
