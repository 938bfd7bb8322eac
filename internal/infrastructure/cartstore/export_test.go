package cartstore

import "time"

// SetClock reemplaza el reloj del MemoryStore en tests.
func (s *MemoryStore) SetClock(now func() time.Time) { s.now = now }

// DecodeState expone la decodificación del RedisStore.
var DecodeState = decodeState
