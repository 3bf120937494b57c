// Package extract implements the flyer product extraction pipeline: price
// recognition, line classification, name normalization, categorization and
// the table and text strategies that combine them per page.
//
// Everything except Pipeline is a pure function of its input and safe for
// concurrent use.
package extract
