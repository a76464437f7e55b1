package importer

import "time"

type systemClock struct{}

func (c systemClock) Now() time.Time {
	return time.Now().UTC()
}
