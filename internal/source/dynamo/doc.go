// Package dynamo implements source.Handle on top of the AWS SDK for Go v2.
//
// Scans follow LastEvaluatedKey until the table is exhausted. Typed scans
// decode through attributevalue using json struct tags, so record types can
// be shared with the SQLite source.
package dynamo
