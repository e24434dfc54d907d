// internal/event/types.go
package event

import (
	"go-path-defense/internal/types"
	"go-path-defense/pkg/tilemap"
)

const (
	EnemySpawned    EventType = "EnemySpawned"
	EnemyKilled     EventType = "EnemyKilled" // Враг уничтожен
	EnemyLeaked     EventType = "EnemyLeaked" // Враг дошёл до конца пути
	EnemyLooped     EventType = "EnemyLooped" // Стресс-тест: враг вернулся на старт
	TowerPlaced     EventType = "TowerPlaced" // Башня построена
	WaveStarted     EventType = "WaveStarted"
	SessionFinished EventType = "SessionFinished" // Стресс-тест: время вышло
	GameOver        EventType = "GameOver"        // Жизни закончились
)

// EnemyData — данные для событий врагов.
type EnemyData struct {
	ID    types.EntityID
	DefID string
	Pos   tilemap.Point
}

// TowerData — данные для TowerPlaced.
type TowerData struct {
	ID    types.EntityID
	DefID string
	Cell  tilemap.Cell
	Cost  int
}

// WaveData — данные для WaveStarted.
type WaveData struct {
	Number  int
	EnemyID string
	Count   int
}
