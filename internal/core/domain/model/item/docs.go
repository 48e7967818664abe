// Package item provides the Item entity describing purchased products held
// in warehouse parcels. Regular items link back to their purchase order;
// aggregate items describe the combined contents of a consolidated parcel
// and reference their component items instead.
package item
