// Package gemini implements generation.Generator on Google's Gemini API.
//
// The generator renders a fixed prompt around the question text, calls the
// configured model through the google.golang.org/genai client, and retries
// transient failures with exponential backoff and jitter. Responses that are
// empty or blocked by safety filters are treated as permanent failures.
package gemini
