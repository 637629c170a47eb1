// Package events decouples request handling from background work. Services
// emit a TaskRequestEvent after committing their writes; handlers registered
// with the emitter decide how to run the requested task.
package events
