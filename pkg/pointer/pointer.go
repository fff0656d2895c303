package pointer

import "time"

func Int64(i int64) *int64 {
	o := i
	return &o
}

func Bool(b bool) *bool {
	o := b
	return &o
}

func String(s string) *string {
	o := s
	return &o
}

func Duration(t time.Duration) *time.Duration {
	o := t
	return &o
}
