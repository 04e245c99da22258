// Package mapperkit generates MyBatis-style data-access code from table
// descriptors: a mapper XML document with batch insert, upsert, atomic
// increment, column projection and single-row statements, and the Go mapper
// interface with its query-by-example types.
//
// The generator lives in compiler/gen, the table loaders in compiler/load,
// the criteria runtime the generated example types build on in criteria and
// the statement preview renderer in runtime/render. The mapperkit command
// ties them together:
//
//	mapperkit generate --config mapperkit.yaml
//	mapperkit preview --table user --statement insertBatchSelective --params params.yaml
//
// This package holds the errors shared by all of them.
package mapperkit
