// Package analytics holds the shapes of the canned aggregation outputs.
package analytics

// TagCount is one row of the popular-tags aggregation.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// TypeStats summarizes the active records of one content type for a tenant.
// AvgRating is rounded to two decimal places; Sentiments is the raw sequence
// of sentiment values across the group.
type TypeStats struct {
	ContentType string   `json:"contentType"`
	Count       int      `json:"count"`
	AvgRating   float64  `json:"avgRating"`
	Sentiments  []string `json:"sentiments"`
}
