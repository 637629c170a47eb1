// Package domain contains the core business entities of the Q&A service:
// documents, and the questions asked against them together with the status
// lifecycle a question moves through while its answer is generated in the
// background. It is independent of any storage or delivery mechanism.
package domain
