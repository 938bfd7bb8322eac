package sales

import "time"

// SetClock reemplaza el reloj de las sesiones en tests.
func (uc *POSSessionUseCase) SetClock(now func() time.Time) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.now = now
	uc.lastGC = now()
}

// TrackedSessions cantidad de sesiones con estado en memoria.
func (uc *POSSessionUseCase) TrackedSessions() int {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return len(uc.sessions)
}
