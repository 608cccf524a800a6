// Package countries serves the reconciled country dataset.
//
// # Store
//
// Store persists countries in the 'countries' table keyed by name. Upsert
// inserts new names and overwrites existing rows in place (the id survives),
// stamping last_refreshed_at on both paths. Lookups, filters and deletes
// compare names, regions and currency codes exactly, regardless of the
// database collation.
//
// # Routes
//
//   - POST /countries/refresh
//   - GET /countries?region=&currency=&sort=gdp_desc
//   - GET /countries/image
//   - GET /countries/:name
//   - DELETE /countries/:name
//
// Routes are declared as a list and registered most-specific-first, so the
// static sub-paths always win over the :name parameter.
//
// # Errors
//
// SourceUnavailable maps to 503, NotFound to 404 and everything else to 500.
package countries
