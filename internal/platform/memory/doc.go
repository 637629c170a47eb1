// Package memory provides in-process implementations of the storage
// interfaces in internal/store. It backs local runs without a database and
// end-to-end tests. Data does not survive a restart.
package memory
