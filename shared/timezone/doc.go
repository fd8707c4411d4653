// Package timezone keeps every timestamp the service writes in one zone.
//
// The zone comes from APP_TIMEZONE and is loaded on first use, so packages
// that never ask for the time do not touch configuration. Unknown names fall
// back to UTC.
//
// Calendar dates such as a todo's start and end date carry no zone. They are
// parsed and formatted with ParseDate and FormatDate, which pin them to UTC
// midnight so a date read back from the database is the same day that was
// sent.
package timezone
