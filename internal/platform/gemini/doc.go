// Package gemini implements generation.Backend on Google's Gemini API
// through the google.golang.org/genai client.
//
// Replies are requested in JSON mode with the translator's system
// instruction attached. HTTP 429 and 5xx responses are reported as
// transient so the translator retries them; every other API error, and a
// reply blocked by safety filters, is permanent.
package gemini
