// Package status serves GET /status: the total number of stored countries
// and the most recent last_refreshed_at, or null when nothing is stored.
package status
