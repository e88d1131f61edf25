// Package tui runs wizard pages as terminal prompts.
//
// Every answer is forwarded to the page's binding.Registry, so terminal
// sessions obey the same rules as graphical ones: numeric answers are
// clamped, fields locked by an active defaults toggle are shown but not
// prompted, and blank required fields are asked again until the page is
// valid. PromptDriver abstracts survey so sessions can be scripted in tests.
package tui
