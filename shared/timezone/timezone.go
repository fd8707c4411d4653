package timezone

import (
	"sync"
	"time"
	"todoapp/config"
	"todoapp/shared/constant"

	"github.com/rs/zerolog/log"
)

const defaultZone = "UTC"

var (
	once        sync.Once
	appLocation *time.Location
)

// GetLocation returns the application zone.
func GetLocation() *time.Location {
	once.Do(func() {
		appLocation = load(config.Get().App.Timezone)
	})

	return appLocation
}

func load(name string) *time.Location {
	if name == "" {
		log.Warn().Msg("No timezone configured, using UTC as default")

		name = defaultZone
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Error().Err(err).Str("timezone", name).Msg("Failed to load timezone, falling back to UTC")

		return time.UTC
	}

	log.Debug().Str("timezone", loc.String()).Msg("Application timezone initialized")

	return loc
}

// Now returns the current time in the application zone.
func Now() time.Time {
	return time.Now().In(GetLocation())
}

func ToAppTime(t time.Time) time.Time {
	return t.In(GetLocation())
}

func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}

// ParseDate reads a YYYY-MM-DD calendar date as UTC midnight.
func ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation(constant.CalendarFormat, value, time.UTC)
}

// FormatDate writes the calendar day of t without converting its zone.
func FormatDate(t time.Time) string {
	return t.Format(constant.CalendarFormat)
}
