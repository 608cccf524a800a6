// Package snapshot renders the point-in-time summary served by
// GET /countries/image.
//
// After each successful refresh the Reporter reads the total count and the
// top countries by estimated GDP, encodes them as JSON and stores the result
// in object storage, creating the bucket when it does not exist. Latest reads
// the stored summary back and reports ErrNotFound before the first refresh.
package snapshot
