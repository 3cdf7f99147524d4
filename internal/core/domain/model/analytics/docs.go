// Package analytics holds the calendar arithmetic and figures behind the
// vendor dashboard: named time windows evaluated in a vendor's time zone,
// percentage changes and their display trends.
package analytics
