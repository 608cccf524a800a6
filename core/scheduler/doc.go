// Package scheduler runs periodic jobs in-process on robfig/cron.
//
// Specs accept an optional leading seconds field and descriptors such as
// @hourly or @every 30m. Overlapping runs of the same job are skipped. Stop
// cancels the context handed to running jobs and waits for them.
package scheduler
