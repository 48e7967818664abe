// Package shipgroup provides the shared domestic shipping Group entity.
// Parcels arriving together from one seller reference a group instead of
// duplicating the courier charge; the group bills it once for all of them.
package shipgroup
