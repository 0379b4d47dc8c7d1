// Package harvest discovers article pages on a listing page, extracts their
// title and body across drifting page layouts, skips paywalled content, and
// hands the results to translation, knowledge-base and archive sinks.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, gemini/).
package harvest
