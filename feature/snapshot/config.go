package snapshot

// Config holds settings for the summary artifact.
type Config struct {
	// ObjectName is the object key of the summary inside the storage bucket.
	ObjectName string `mapstructure:"object_name" default:"cache/summary.json"`
	// TopN is the number of countries listed by GDP.
	TopN int `mapstructure:"top_n" default:"5"`
}
