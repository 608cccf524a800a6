// Package utils provides common utility functions for the country-api application.
// It includes helper functions for type conversion and for normalizing loosely
// typed upstream values that don't fit into domain-specific packages.
package utils
