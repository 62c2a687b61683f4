// Package blob stores uploaded files such as résumés and shared workspace
// documents.
//
// Two backends implement Store: an embedded BadgerDB (the default, in
// memory when no path is configured) and Amazon S3 or a compatible service.
// Keys are content addressed with a BLAKE3 prefix, see Key.
package blob
