// Package models defines the persisted country row and the query/stat shapes
// shared by the countries, snapshot and status features.
package models
