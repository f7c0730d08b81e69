// Package blog defines the domain types and collaborator interfaces shared by the
// summarize pipeline: fetched pages, extracted content, summaries, and the two
// persisted record shapes.
package blog
