// Package encarte extracts structured product listings (name, price,
// promotion flag, category) from promotional flyers.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. The extraction core lives in extract/, and
// collaborators live in subdirectories named after their primary
// dependency (e.g., sqlite/, goquery/, gemini/).
package encarte
