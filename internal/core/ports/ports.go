// Package ports declares the contracts between the recommendation core and
// the adapters that feed it: census lookup, postal lookup, account storage,
// password hashing, census workbook storage and the reload bus.
package ports
