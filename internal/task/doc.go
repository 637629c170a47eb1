// Package task runs question answering in the background.
//
// A Dispatcher starts one goroutine per question and tracks it in a Registry
// from dispatch until completion. The goroutine keeps the values of the
// request that triggered it but not its cancellation, so answering outlives
// the HTTP request. The QuestionProcessor does the work: it calls the answer
// generator without holding any lock, then records the outcome in a fresh
// store session. Background failures never reach the client; they are sent to
// a FailureReporter.
package task
