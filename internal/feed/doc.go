// SPDX-License-Identifier: MPL-2.0

// Package feed fetches the two external scoring feeds (Time-Mode and
// Twitch-Plays) and merges matched rows into catalog records.
//
// Both feeds are tabular JSON pulled over HTTP. Fetching is best-effort: a
// failed fetch degrades that feed to empty and the merge simply finds no
// match for any record. Matching is by normalized name (see Normalize).
package feed
