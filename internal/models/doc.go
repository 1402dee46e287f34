// Package models defines the canonical task shape shared by both sync directions.
//
// A [Task] is the normalized, service-independent representation the sync
// engine reasons about. The field mapper in internal/tasks converts between
// a Task and each service's native record (Todoist task JSON, Notion page
// properties); nothing in this package performs I/O.
//
// [Priority] carries the 1..4 urgency scale used by Todoist; Notion stores
// the same scale as "p1".."p4" select labels. Conversions between the two
// are lossless for valid values and normalize anything else to the lowest
// urgency.
package models
