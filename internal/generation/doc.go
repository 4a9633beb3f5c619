// Package generation turns a raw Korean word into a structured
// TranslationRecord using an external language model.
//
// Language models are reached through the Backend interface, with one
// implementation per provider under internal/platform. The Translator
// owns everything provider-independent: the system instruction, pulling
// a JSON object out of loosely formatted replies, validating the result
// and retrying transient backend failures with exponential backoff.
package generation
