package maze

// Ability is the single-use phase power. While active the actor moves
// faster and passes through walls.
type Ability struct {
	Used   bool
	Active bool
	Timer  int // Ticks left while Active
}

// Activate starts the phase for the given number of ticks. It does nothing
// once the ability has been used this round.
func (a *Ability) Activate(ticks int) bool {
	if a.Used {
		return false
	}
	a.Used = true
	a.Active = true
	a.Timer = ticks
	return true
}

// Tick counts down one tick. Used is never cleared.
func (a *Ability) Tick() {
	if !a.Active {
		return
	}
	a.Timer--
	if a.Timer <= 0 {
		a.Timer = 0
		a.Active = false
	}
}

// Reset makes the ability available again for a new round.
func (a *Ability) Reset() {
	*a = Ability{}
}
