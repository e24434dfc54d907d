package component

// Health — компонент здоровья. Current может уйти в минус до очистки мёртвых.
type Health struct {
	Current int
	Max     int
}

// Fraction возвращает долю здоровья, ограниченную [0,1].
func (h Health) Fraction() float64 {
	if h.Max <= 0 {
		return 0
	}
	f := float64(h.Current) / float64(h.Max)
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// Cooldown — перезарядка башни с фиксированным периодом.
// Готова, когда Elapsed >= Period; остаётся готовой, пока не будет выстрела.
type Cooldown struct {
	Period  float64
	Elapsed float64
}

// NewReadyCooldown создаёт перезарядку, готовую к выстрелу сразу.
func NewReadyCooldown(period float64) Cooldown {
	return Cooldown{Period: period, Elapsed: period}
}

// Tick продвигает таймер. Готовый таймер не накапливает время сверх периода.
func (c *Cooldown) Tick(dt float64) {
	if c.Ready() {
		return
	}
	c.Elapsed += dt
	if c.Elapsed > c.Period {
		c.Elapsed = c.Period
	}
}

func (c *Cooldown) Ready() bool {
	return c.Elapsed >= c.Period
}

// Reset запускает перезарядку заново после выстрела.
func (c *Cooldown) Reset() {
	c.Elapsed = 0
}

// RepeatingTimer — таймер, который может сработать несколько раз за тик
// (например, спавн при просевшем FPS).
type RepeatingTimer struct {
	Period  float64
	Elapsed float64
}

// Tick продвигает таймер и возвращает число полных периодов за этот тик.
func (t *RepeatingTimer) Tick(dt float64) int {
	if t.Period <= 0 {
		return 0
	}
	t.Elapsed += dt
	n := 0
	for t.Elapsed >= t.Period {
		t.Elapsed -= t.Period
		n++
	}
	return n
}
