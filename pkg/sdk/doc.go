// Package contentdex provides an embedded Go client for the contentdex
// content search index backed by Redis with the search module.
//
// The client wires the same repositories and services the HTTP server
// uses, so search semantics (filter composition, sort selection,
// pagination caps) are identical:
//
//	client, _ := contentdex.New(ctx, contentdex.WithRedis("localhost:6379", ""))
//	defer client.Close()
//
//	id, _ := client.IndexRecord(ctx, contentdex.Record{
//	    BusinessID:  "b-42",
//	    ContentType: "submission",
//	    ContentID:   "s-1001",
//	    Title:       "Great service",
//	    Content:     "Fast and friendly.",
//	    Tags:        []string{"fast"},
//	    Metadata:    contentdex.Metadata{Rating: 5},
//	})
//
//	hits, _ := client.Search(ctx, contentdex.SearchQuery{
//	    Query:      "friendly",
//	    BusinessID: "b-42",
//	})
//	_ = id
//	_ = hits
package contentdex
