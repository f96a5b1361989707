// Package wakatime provides a minimal client for the WakaTime API.
//
// Only the two endpoints the card generator needs are implemented: the
// last-7-days aggregate stats and the language color catalog. Requests are
// authenticated with the raw API key in a Basic authorization header and
// use a fixed 30-second timeout. Failures are fatal to the caller; there is
// deliberately no retry or partial-result fallback, since the cards are
// regenerated wholesale on the next scheduled run anyway.
package wakatime
