package defs

import "time"

// WaveDefinition описывает параметры для одной волны врагов.
type WaveDefinition struct {
	EnemyID  string        `yaml:"enemy"`    // Идентификатор врага из enemies.yaml
	Count    int           `yaml:"count"`    // Количество врагов в волне
	Interval time.Duration `yaml:"interval"` // Интервал между появлением врагов
}

// WaveSet — последовательность волн. После последней волны набор
// продолжается с волны LoopFrom, поэтому обычная игра не заканчивается сама.
type WaveSet struct {
	Waves    []WaveDefinition `yaml:"waves"`
	LoopFrom int              `yaml:"loop_from"`
}

// Wave возвращает определение волны по её порядковому номеру (с нуля),
// учитывая зацикливание хвоста.
func (s WaveSet) Wave(n int) WaveDefinition {
	if n < len(s.Waves) {
		return s.Waves[n]
	}
	tail := len(s.Waves) - s.LoopFrom
	return s.Waves[s.LoopFrom+(n-len(s.Waves))%tail]
}

type waveListFile struct {
	Sets map[string]WaveSet `yaml:"sets"`
}
