package ptrx

import "time"

// String retorna un puntero al string dado
func String(s string) *string {
	return &s
}

// Bool retorna un puntero al bool dado
func Bool(b bool) *bool {
	return &b
}

// Int retorna un puntero al int dado
func Int(i int) *int {
	return &i
}

// Time retorna un puntero al time dado
func Time(t time.Time) *time.Time {
	return &t
}

// Deref retorna el valor apuntado o el default si es nil
func Deref[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}
